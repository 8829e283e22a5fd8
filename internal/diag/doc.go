// Package diag defines the diagnostic model shared by the lexer and parser.
//
// Producers emit findings through a Reporter; the driver collects them in a Bag
// and internal/diagfmt renders them. Package diag performs no formatting or IO.
//
// A Diagnostic carries a Severity, a stable numeric Code, a short message, the
// primary source.Span and optional Notes pointing at related locations.
package diag
