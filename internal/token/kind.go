package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents a decimal integer literal.
	IntLit

	KwLet    // let
	KwSet    // set
	KwPrint  // print
	KwMove   // move
	KwCopy   // copy
	KwClone  // clone
	KwRef    // ref
	KwUnsafe // unsafe

	Assign    // =
	Amp       // &
	Minus     // -
	Colon     // :
	Semicolon // ;
	Comma     // ,
	DotDot    // ..
	DotDotEq  // ..=
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	KwLet:     "let",
	KwSet:     "set",
	KwPrint:   "print",
	KwMove:    "move",
	KwCopy:    "copy",
	KwClone:   "clone",
	KwRef:     "ref",
	KwUnsafe:  "unsafe",
	Assign:    "=",
	Amp:       "&",
	Minus:     "-",
	Colon:     ":",
	Semicolon: ";",
	Comma:     ",",
	DotDot:    "..",
	DotDotEq:  "..=",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
