package selector

import (
	"slices"

	"deob/internal/ast"
)

// Query is a compiled predicate chain, outermost first.
type Query struct {
	preds []Pred
}

// Compile builds a query from predicates listed outermost first.
func Compile(preds ...Pred) Query {
	return Query{preds: slices.Clone(preds)}
}

// Len reports the number of predicates in the chain.
func (q Query) Len() int { return len(q.preds) }

type Options struct {
	// DisableMemo re-evaluates every predicate instead of consulting the
	// per-frame memo row. Results are identical; only Stats differ.
	DisableMemo bool
}

// Stats counts work done by the last FindMatches call.
type Stats struct {
	Visited int
	Evals   int
}

// Engine runs queries over one tree. An Engine is not safe for concurrent
// use; build one per goroutine.
type Engine struct {
	b     *ast.Builder
	opts  Options
	stats Stats
}

func NewEngine(b *ast.Builder, opts Options) *Engine {
	return &Engine{b: b, opts: opts}
}

func (e *Engine) Stats() Stats { return e.stats }

type memoState uint8

const (
	memoUnknown memoState = iota
	memoYes
	memoNo
)

type frame struct {
	memo []memoState
}

type matcher struct {
	env    *Env
	preds  []Pred
	memoOn bool
	stats  *Stats

	frames []frame
	path   []ast.Selectable
	out    []ast.Selectable
}

// FindMatches returns every node under root (root included) that q selects,
// in pre-order. An empty query selects nothing.
func (e *Engine) FindMatches(q Query, root ast.Selectable) []ast.Selectable {
	e.stats = Stats{}
	if len(q.preds) == 0 || !root.IsValid() {
		return nil
	}
	m := &matcher{
		env:    newEnv(e.b),
		preds:  q.preds,
		memoOn: !e.opts.DisableMemo,
		stats:  &e.stats,
	}
	m.visit(root)
	return m.out
}

func (m *matcher) visit(s ast.Selectable) {
	m.push(s)
	m.stats.Visited++
	if m.test() {
		m.out = append(m.out, s)
	}
	for _, child := range m.env.Children(s) {
		m.visit(child)
	}
	m.pop()
}

func (m *matcher) push(s ast.Selectable) {
	depth := len(m.frames)
	if depth < cap(m.frames) {
		m.frames = m.frames[:depth+1]
		row := m.frames[depth].memo
		if row == nil {
			row = make([]memoState, len(m.preds))
		} else {
			clear(row)
		}
		m.frames[depth].memo = row
	} else {
		m.frames = append(m.frames, frame{memo: make([]memoState, len(m.preds))})
	}
	m.path = append(m.path, s)
}

func (m *matcher) pop() {
	m.frames = m.frames[:len(m.frames)-1]
	m.path = m.path[:len(m.path)-1]
}

// test checks the frame on top of the stack. The rightmost predicate must
// hold on the node itself; the others are satisfied right to left, each by a
// strictly shallower frame than the one before.
func (m *matcher) test() bool {
	top := len(m.frames) - 1
	idx := len(m.preds) - 1
	if !m.eval(top, idx) {
		return false
	}
	for depth := top - 1; depth >= 0 && idx > 0; depth-- {
		if m.eval(depth, idx-1) {
			idx--
		}
	}
	return idx == 0
}

func (m *matcher) eval(depth, idx int) bool {
	row := m.frames[depth].memo
	if m.memoOn {
		switch row[idx] {
		case memoYes:
			return true
		case memoNo:
			return false
		}
	}
	m.stats.Evals++
	ok := m.preds[idx](m.env, m.path[:depth+1])
	if ok {
		row[idx] = memoYes
	} else {
		row[idx] = memoNo
	}
	return ok
}
