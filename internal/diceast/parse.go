package diceast

import (
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/suderio/d20go/internal/dicerr"
)

// Parse tokenizes and parses a dice expression into an Expression AST.
//
// When allowComments is false, the entire input must parse as one
// expression; any leftover text raises a RollSyntaxError. When true, and the
// full string fails to parse, Parse retries against the longest leading
// prefix that does parse and treats the remainder as a trailing comment -
// the same two-pass strategy the reference grammar's separate
// "expr"/"commented_expr" start rules implement with a single grammar.
func Parse(expr string, allowComments bool) (*Expression, error) {
	root, err := astParser.ParseString("", expr)
	if err == nil {
		return &Expression{Root: buildRoot(root)}, nil
	}

	if !allowComments {
		line, col := errorPosition(err)
		return nil, dicerr.NewSyntaxError(line, col, "%s", err.Error())
	}

	offset := errorOffset(err)
	if offset <= 0 || offset > len(expr) {
		line, col := errorPosition(err)
		return nil, dicerr.NewSyntaxError(line, col, "%s", err.Error())
	}

	prefix := strings.TrimRight(expr[:offset], " \t")
	if prefix == "" {
		line, col := errorPosition(err)
		return nil, dicerr.NewSyntaxError(line, col, "%s", err.Error())
	}

	root, prefixErr := astParser.ParseString("", prefix)
	for prefixErr != nil && offset > 1 {
		offset--
		if prefix = strings.TrimRight(expr[:offset], " \t"); prefix != "" {
			root, prefixErr = astParser.ParseString("", prefix)
		}
	}
	if prefixErr != nil {
		line, col := errorPosition(err)
		return nil, dicerr.NewSyntaxError(line, col, "%s", err.Error())
	}

	comment := strings.TrimSpace(expr[offset:])
	return &Expression{Root: buildRoot(root), Comment: comment}, nil
}

// errorPosition extracts a 1-based line/column from a participle error, or
// (0, 0) if the error does not carry position information.
func errorPosition(err error) (line, col int) {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		return pos.Line, pos.Column
	}
	return 0, 0
}

// errorOffset extracts the byte offset at which participle gave up, used to
// locate where a trailing comment begins.
func errorOffset(err error) int {
	if perr, ok := err.(participle.Error); ok {
		return perr.Position().Offset
	}
	return 0
}
