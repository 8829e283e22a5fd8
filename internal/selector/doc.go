// Package selector runs CSS-like structural queries over a syntax tree.
//
// A Query is a chain of predicates read outermost first. Adjacent predicates
// in the chain are joined by the descendant combinator; Adjacent folds a run
// of predicates into one that walks left siblings instead. The Engine visits
// the tree once in pre-order and keeps a memo row per path frame, so each
// predicate runs at most once per (node, position in the chain).
package selector
