package resolver

import (
	"fmt"

	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// UndefinedRuleError reports a reference to a rule that does not exist.
// Rule is the rule containing the reference; it is empty when the name came
// from outside the grammar.
type UndefinedRuleError struct {
	Name string
	Rule string
	Pos  token.Position
}

func (e *UndefinedRuleError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("undefined rule %q", e.Name)
	}
	return fmt.Sprintf("%s: undefined rule %q referenced from %q", e.Pos, e.Name, e.Rule)
}
