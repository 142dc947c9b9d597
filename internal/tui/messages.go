package tui

// WdMsg reports progress of a running action.
type WdMsg string

// DoneMsg carries the text shown on the result screen after an action succeeds.
type DoneMsg string

// ErrMsg carries the error of a failed action.
type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }
