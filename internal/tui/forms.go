package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	formInputWidth     = 40
	formInputCharLimit = 500
)

// FormAction is what a key press asked the owning page to do.
type FormAction int

const (
	// FormActionNone means the form consumed the key.
	FormActionNone FormAction = iota
	// FormActionClose asks the page to close the modal.
	FormActionClose
	// FormActionSwitch asks the page to switch to the sibling modal.
	FormActionSwitch
	// FormActionSubmit asks the page to submit the values.
	FormActionSubmit
)

type formField struct {
	label string
	input textinput.Model
}

// Form is a modal dialog of text fields.
type Form struct {
	kind    ModalKind
	sibling ModalKind
	title   string
	fields  []formField
	focus   int

	submitting bool
	err        string
}

// NewLoginForm creates the login dialog. Its sibling is signup.
func NewLoginForm() *Form {
	f := newForm(ModalLogin, ModalSignup, "Log in", "Username", "Password")
	f.fields[1].input.EchoMode = textinput.EchoPassword
	return f
}

// NewSignupForm creates the signup dialog. Its sibling is login.
func NewSignupForm() *Form {
	f := newForm(ModalSignup, ModalLogin, "Sign up", "Username", "Email", "Password")
	f.fields[2].input.EchoMode = textinput.EchoPassword
	return f
}

// Field indexes of the new-game form.
const (
	gameFieldTitle = iota
	gameFieldDescription
	gameFieldRules
	gameFieldCategories
)

// NewGameForm creates the new-game dialog.
func NewGameForm() *Form {
	f := newForm(ModalForm, ModalNone, "New game", "Title", "Description", "Rules", "Categories (comma separated)")
	f.fields[gameFieldCategories].input.Placeholder = "Inne, Navn"
	return f
}

func newForm(kind, sibling ModalKind, title string, labels ...string) *Form {
	f := &Form{kind: kind, sibling: sibling, title: title}
	for _, label := range labels {
		ti := textinput.New()
		ti.CharLimit = formInputCharLimit
		ti.Width = formInputWidth
		f.fields = append(f.fields, formField{label: label, input: ti})
	}
	f.fields[0].input.Focus()
	return f
}

// Kind returns the modal this form belongs to.
func (f *Form) Kind() ModalKind { return f.kind }

// Sibling returns the modal the switch action opens, or ModalNone.
func (f *Form) Sibling() ModalKind { return f.sibling }

// Value returns the trimmed value of field i.
func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return strings.TrimSpace(f.fields[i].input.Value())
}

// SetValue sets field i.
func (f *Form) SetValue(i int, v string) {
	if i >= 0 && i < len(f.fields) {
		f.fields[i].input.SetValue(v)
	}
}

// SetError shows msg under the fields and ends submission.
func (f *Form) SetError(msg string) {
	f.err = msg
	f.submitting = false
}

// Err returns the message shown under the fields.
func (f *Form) Err() string { return f.err }

// SetSubmitting marks the form busy; keys are ignored until SetError or Reset.
func (f *Form) SetSubmitting(v bool) { f.submitting = v }

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool { return f.submitting }

// Reset clears every field and refocuses the first one.
func (f *Form) Reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
		f.fields[i].input.Blur()
	}
	f.focus = 0
	f.fields[0].input.Focus()
	f.err = ""
	f.submitting = false
}

// Update handles a message while the form is visible.
func (f *Form) Update(msg tea.Msg) (FormAction, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return FormActionNone, cmd
	}

	switch keyMsg.String() {
	case keyEsc:
		return FormActionClose, nil
	case keySwitch:
		if f.sibling != ModalNone {
			return FormActionSwitch, nil
		}
		return FormActionNone, nil
	}
	if f.submitting {
		return FormActionNone, nil
	}

	switch keyMsg.String() {
	case keyTab, keyDown:
		f.setFocus(f.focus + 1)
		return FormActionNone, textinput.Blink
	case "shift+tab", keyUp:
		f.setFocus(f.focus - 1)
		return FormActionNone, textinput.Blink
	case keyEnter:
		if f.focus < len(f.fields)-1 {
			f.setFocus(f.focus + 1)
			return FormActionNone, textinput.Blink
		}
		return FormActionSubmit, nil
	case keySubmit:
		return FormActionSubmit, nil
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return FormActionNone, cmd
}

func (f *Form) setFocus(i int) {
	n := len(f.fields)
	f.fields[f.focus].input.Blur()
	f.focus = ((i % n) + n) % n
	f.fields[f.focus].input.Focus()
}

// View renders the dialog.
func (f *Form) View() string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(f.title))
	sb.WriteString("\n\n")
	for _, field := range f.fields {
		sb.WriteString(LabelStyle.Render(field.label))
		sb.WriteString("\n")
		sb.WriteString(field.input.View())
		sb.WriteString("\n\n")
	}
	if f.err != "" {
		sb.WriteString(CriticalStyle.Render(f.err))
		sb.WriteString("\n\n")
	}
	if f.submitting {
		sb.WriteString(SubtleStyle.Render("Sending..."))
		sb.WriteString("\n\n")
	}

	help := "[Tab] Next field  [Enter] Submit  [Esc] Close"
	switch f.sibling {
	case ModalSignup:
		help += "  [Ctrl+T] Sign up instead"
	case ModalLogin:
		help += "  [Ctrl+T] Log in instead"
	case ModalNone, ModalForm:
	}
	sb.WriteString(HelpStyle.Render(help))

	return ModalStyle.Render(lipgloss.NewStyle().Width(formInputWidth + 4).Render(sb.String()))
}
