package lexer

import (
	"fmt"

	"github.com/leapstack-labs/ebnfgen/pkg/token"
)

// Error reports a position where no token rule matches.
type Error struct {
	Pos  token.Position
	Near string // offending prefix, at most 30 characters
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: failed to tokenize near %q", e.Pos, e.Near)
}
