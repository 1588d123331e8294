package parse

import (
	"fmt"
	"strings"

	"github.com/colalang/cola/cola/lexer"
)

// Error is a token or grammar failure discovered while building the
// concrete parse tree. The parser aborts on the first one; there is no
// partial-tree recovery.
type Error struct {
	Pos      lexer.Pos
	Message  string
	Expected []string
}

func (e *Error) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s (expected %s)", e.Pos, e.Message, strings.Join(e.Expected, " or "))
}
