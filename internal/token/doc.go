// Package token defines lexical token kinds and trivia for slice-assignment scripts.
// Invariants:
//   - Token.Text is a slice of the original source (no copies), except for
//     identifiers, which are NFC-normalized.
//   - Token.Span covers the lexeme exactly (Start..End).
//   - Comments are represented as leading Trivia and never appear in the
//     main token stream.
package token
