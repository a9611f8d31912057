package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icebreaker-games/icebreaker/internal/api"
	"github.com/icebreaker-games/icebreaker/internal/logging"
)

// authResultMsg reports the outcome of a login or signup submission.
type authResultMsg struct {
	form     *Form
	username string
	err      error
}

// modalHost owns a page's modal state and the forms behind it.
type modalHost struct {
	modals Modals
	forms  map[ModalKind]*Form
}

func newModalHost(forms ...*Form) modalHost {
	h := modalHost{forms: make(map[ModalKind]*Form, len(forms))}
	for _, f := range forms {
		h.forms[f.Kind()] = f
	}
	return h
}

// active returns the visible form, or nil.
func (h *modalHost) active() *Form {
	if !h.modals.Any() {
		return nil
	}
	return h.forms[h.modals.Open()]
}

// toggle opens or closes kind. Opening starts from an empty form.
func (h *modalHost) toggle(kind ModalKind) tea.Cmd {
	if _, ok := h.forms[kind]; !ok {
		return nil
	}
	h.modals = h.modals.Toggle(kind)
	if h.modals.Visible(kind) {
		h.forms[kind].Reset()
		return textinput.Blink
	}
	return nil
}

// update routes msg to the visible form and applies close and switch
// actions. Submit is left to the page.
func (h *modalHost) update(msg tea.Msg) (FormAction, *Form, tea.Cmd) {
	f := h.active()
	if f == nil {
		return FormActionNone, nil, nil
	}

	action, cmd := f.Update(msg)
	switch action {
	case FormActionClose:
		h.modals = h.modals.Close(f.Kind())
	case FormActionSwitch:
		if next, ok := h.forms[f.Sibling()]; ok {
			h.modals = h.modals.Switch(f.Kind(), f.Sibling())
			next.Reset()
			cmd = textinput.Blink
		}
	case FormActionNone, FormActionSubmit:
	}
	return action, f, cmd
}

// submitAuth validates a login or signup form and runs the session's hook.
func submitAuth(ctx context.Context, session *Session, f *Form) tea.Cmd {
	req := AuthRequest{Kind: f.Kind(), Username: f.Value(0)}
	switch f.Kind() {
	case ModalLogin:
		req.Password = f.Value(1)
	case ModalSignup:
		req.Email = f.Value(1)
		req.Password = f.Value(2)
	case ModalNone, ModalForm:
		return nil
	}
	if req.Username == "" || req.Password == "" {
		f.SetError("Username and password are required")
		return nil
	}

	f.SetSubmitting(true)
	hook := session.Auth
	return func() tea.Msg {
		var err error
		if hook != nil {
			err = hook(ctx, req)
		}
		return authResultMsg{form: f, username: req.Username, err: err}
	}
}

// handleAuthResult applies an auth outcome if it belongs to one of this host's forms.
func (h *modalHost) handleAuthResult(ctx context.Context, session *Session, msg authResultMsg) bool {
	f, ok := h.forms[msg.form.Kind()]
	if !ok || f != msg.form {
		return false
	}

	if msg.err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("component", "auth").
			Str("modal", f.Kind().String()).
			Err(msg.err).
			Msg("authentication failed")
		f.SetError(api.UserMessage(msg.err))
		return true
	}

	session.Username = msg.username
	h.modals = h.modals.Close(f.Kind())
	f.Reset()
	return true
}

// overlay renders the visible modal centred over the page, or the page itself.
func (h *modalHost) overlay(page string, width, height int) string {
	f := h.active()
	if f == nil {
		return page
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, f.View())
}
