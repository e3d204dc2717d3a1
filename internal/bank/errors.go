package bank

import (
	"errors"
	"fmt"
)

// ErrBankNotFound indicates there is no bank file for the requested name.
var ErrBankNotFound = errors.New("bank not found")

// MalformedBankError reports a question block that matched the bank
// structure but has no single determinable correct answer. It aborts the
// whole parse.
type MalformedBankError struct {
	Label   string
	Correct int // number of options flagged correct
}

func (e *MalformedBankError) Error() string {
	if e.Correct == 0 {
		return fmt.Sprintf("no correct answer determined for question %q", e.Label)
	}
	return fmt.Sprintf("question %q has %d correct answers, want exactly one", e.Label, e.Correct)
}
