package diceast

import "github.com/alecthomas/participle/v2/lexer"

// tokenLexer tokenizes dice expressions. Rule order matters: participle's
// simple lexer tries each rule in order at the current position, so
// multi-character operators are listed ahead of the single-character
// operators they could otherwise be mistaken for a prefix of.
var tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Annotation", Pattern: `\[[^\]\n]*\]`},
	{Name: "Decimal", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Eq", Pattern: `==`},
	{Name: "Ne", Pattern: `!=`},
	{Name: "Ge", Pattern: `>=`},
	{Name: "Le", Pattern: `<=`},
	{Name: "FloorDiv", Pattern: `//`},
	{Name: "Gt", Pattern: `>`},
	{Name: "Lt", Pattern: `<`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Percent", Pattern: `%`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "RerollAddOp", Pattern: `(?i)ra`},
	{Name: "RerollOnceOp", Pattern: `(?i)ro`},
	{Name: "RerollOp", Pattern: `(?i)rr`},
	{Name: "MinOp", Pattern: `(?i)mi`},
	{Name: "MaxOp", Pattern: `(?i)ma`},
	{Name: "KeepOp", Pattern: `(?i)k`},
	{Name: "DropOp", Pattern: `(?i)p`},
	{Name: "ExplodeOp", Pattern: `(?i)e`},
	{Name: "High", Pattern: `(?i)h`},
	{Name: "Low", Pattern: `(?i)l`},
	{Name: "D", Pattern: `(?i)d`},
})
