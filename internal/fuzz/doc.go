// Package fuzztests houses Go fuzz harnesses for the front half of deob:
// source -> lexer -> parser -> normalizer -> printer. They smoke test
// robustness on arbitrary input and guard against panics, hangs and
// printer output that no longer parses.
//
// Does not: generate corpora, write files, run the CLI.
//
// Depends on: internal/source, internal/lexer, internal/parser,
// internal/diag, internal/ast, internal/driver, internal/testkit.
package fuzztests
