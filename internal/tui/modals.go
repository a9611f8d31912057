package tui

// ModalKind names a modal dialog.
type ModalKind int

const (
	// ModalNone means no modal is open.
	ModalNone ModalKind = iota
	// ModalLogin is the login dialog.
	ModalLogin
	// ModalSignup is the signup dialog.
	ModalSignup
	// ModalForm is the new-game dialog.
	ModalForm
)

func (k ModalKind) String() string {
	switch k {
	case ModalNone:
		return "none"
	case ModalLogin:
		return "login"
	case ModalSignup:
		return "signup"
	case ModalForm:
		return "form"
	default:
		return "unknown"
	}
}

// Modals records which modal of a page is open. At most one is open at a
// time, so "close one, open the other" is a single transition.
// The zero value has every modal closed.
type Modals struct {
	open ModalKind
}

// Open returns the open modal, or ModalNone.
func (m Modals) Open() ModalKind { return m.open }

// Any reports whether a modal is open.
func (m Modals) Any() bool { return m.open != ModalNone }

// Visible reports whether kind is open.
func (m Modals) Visible(kind ModalKind) bool {
	return kind != ModalNone && m.open == kind
}

// Toggle opens kind, or closes it if it is already open.
func (m Modals) Toggle(kind ModalKind) Modals {
	if m.open == kind {
		return Modals{}
	}
	return Modals{open: kind}
}

// Show opens kind.
func (m Modals) Show(kind ModalKind) Modals {
	return Modals{open: kind}
}

// Close closes kind if it is open.
func (m Modals) Close(kind ModalKind) Modals {
	if m.open != kind {
		return m
	}
	return Modals{}
}

// Switch closes from and opens to. It does nothing unless from is open.
func (m Modals) Switch(from, to ModalKind) Modals {
	if m.open != from || from == ModalNone {
		return m
	}
	return Modals{open: to}
}
