// Package anf rewrites ECMAScript syntax trees into A-normal form.
//
// Normalization runs bottom-up over one fragment and produces a Block: the
// Lines that must run first, in source evaluation order, and the residual
// value expression built only from already-hoisted parts. Effectful operands
// are bound to fresh temporaries drawn from a NamePool; logical and
// conditional expressions become if statements so that their lazy operands
// still run only when the original program would run them.
//
// The rewrite happens in place in the same ast.Builder: residual values reuse
// original nodes and new nodes are appended to the arenas.
package anf
