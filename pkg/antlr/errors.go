package antlr

import (
	"fmt"

	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// UnresolvedError is returned when the grammar still contains a reference
// that was never bound to a rule.
type UnresolvedError struct {
	Name string
	Rule string
	Pos  token.Position
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: reference to %q in rule %q is not resolved", e.Pos, e.Name, e.Rule)
}
