// Package names builds fresh-identifier pools for the normalizer.
package names

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"deob/internal/token"
)

// Pool hands out names in a fixed order and never repeats one. The zero
// value is an empty pool.
type Pool struct {
	prefix string
	limit  int // sequence pools only; 0 means unbounded
	next   int

	words []string

	reserved map[string]struct{}
	issued   int
}

// Sequence returns a pool yielding prefix0, prefix1, ... up to n names, or
// without bound when n <= 0.
func Sequence(prefix string, n int) *Pool {
	if n < 0 {
		n = 0
	}
	return &Pool{prefix: prefix, limit: n}
}

// FromWordlist reads one candidate name per line. Lines are NFC-normalized
// and trimmed; blank lines, duplicates, reserved words and anything that is
// not a plain identifier are skipped.
func FromWordlist(r io.Reader) (*Pool, error) {
	seen := make(map[string]struct{})
	p := &Pool{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := norm.NFC.String(strings.TrimSpace(sc.Text()))
		if w == "" || !IsIdentifier(w) || token.IsReserved(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		p.words = append(p.words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return p, nil
}

// Reserve makes p skip every name in used. Call it with the identifiers of
// the input program so temporaries cannot collide with them.
func Reserve(p *Pool, used ...string) {
	if p.reserved == nil {
		p.reserved = make(map[string]struct{}, len(used))
	}
	for _, u := range used {
		p.reserved[u] = struct{}{}
	}
}

// Next returns the following unreserved name; ok is false once the pool is
// exhausted.
func (p *Pool) Next() (string, bool) {
	for {
		name, ok := p.raw()
		if !ok {
			return "", false
		}
		if _, skip := p.reserved[name]; skip {
			continue
		}
		p.issued++
		return name, true
	}
}

func (p *Pool) raw() (string, bool) {
	if p.words != nil {
		if p.next >= len(p.words) {
			return "", false
		}
		w := p.words[p.next]
		p.next++
		return w, true
	}
	if p.prefix == "" || (p.limit > 0 && p.next >= p.limit) {
		return "", false
	}
	name := p.prefix + strconv.Itoa(p.next)
	p.next++
	return name, true
}

// Issued reports how many names Next has returned.
func (p *Pool) Issued() int { return p.issued }

// Len reports the pool capacity before reservations, or -1 when unbounded.
func (p *Pool) Len() int {
	switch {
	case p.words != nil:
		return len(p.words)
	case p.prefix != "" && p.limit == 0:
		return -1
	default:
		return p.limit
	}
}

// IsIdentifier reports whether s can name a binding: a letter, '_' or '$'
// followed by letters, digits, '_' or '$'.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)):
		default:
			return false
		}
	}
	return true
}
