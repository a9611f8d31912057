package tui

// Key bindings.
const (
	keyQuit   = "q"
	keyCtrlC  = "ctrl+c"
	keyEnter  = "enter"
	keyEsc    = "esc"
	keyTab    = "tab"
	keyUp     = "up"
	keyDown   = "down"
	keySpace  = " "
	keyBack   = "h"
	keyRetry  = "r"
	keyLogin  = "l"
	keySignup = "s"
	keyNew    = "n"
	keySwitch = "ctrl+t"
	keySubmit = "ctrl+s"
)
