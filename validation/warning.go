package validation

import "fmt"

// Warning is a recoverable derivation problem. The compiler substitutes
// Fallback and carries on.
type Warning struct {
	Param    string
	Msg      string
	Fallback string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s; using %s", w.Param, w.Msg, w.Fallback)
}
