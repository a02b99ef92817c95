// Package diag defines the diagnostic model shared by the lexer, parser,
// interpreter and driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// prefixed ID (LEX, SYN, SEM, BAT, IO, OBS), a short Message, the Primary
// span and optional Notes. Fixes carry plain text edits the parser can
// suggest (e.g. a missing ';').
//
// Producers emit through a Reporter. BagReporter collects into a bounded Bag
// which can be sorted and deduplicated before rendering. Package diag does
// no IO; rendering lives in internal/diagfmt.
package diag
