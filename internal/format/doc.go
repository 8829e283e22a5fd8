// Package format prints an AST back to JavaScript text.
//
// The printer is precedence-aware: parentheses are emitted only where the
// tree shape requires them, so printing a parsed program and parsing the
// output again yields the same tree.
package format
