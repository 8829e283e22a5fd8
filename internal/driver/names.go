package driver

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"

	"deob/internal/ast"
	"deob/internal/names"
	"deob/internal/project"
	"deob/internal/selector"
)

// namer builds one fresh pool per file from the run's settings. The word
// list is read once per run.
type namer struct {
	cfg    project.NormalizeConfig
	words  []byte
	digest project.Digest
}

func newNamer(cfg project.NormalizeConfig) (*namer, error) {
	n := &namer{cfg: cfg}
	if cfg.Wordlist == "" {
		return n, nil
	}
	// #nosec G304 -- path comes from flags or the manifest
	data, err := os.ReadFile(cfg.Wordlist)
	if err != nil {
		return nil, fmt.Errorf("word list: %w", err)
	}
	n.words = data
	n.digest = sha256.Sum256(data)
	return n, nil
}

// pool returns a pool that skips every name in reserved.
func (n *namer) pool(reserved []string) (*names.Pool, error) {
	var p *names.Pool
	if n.words != nil {
		var err error
		if p, err = names.FromWordlist(bytes.NewReader(n.words)); err != nil {
			return nil, err
		}
	} else {
		p = names.Sequence(n.cfg.Prefix, n.cfg.PoolSize)
	}
	names.Reserve(p, reserved...)
	return p, nil
}

func (n *namer) fingerprint() project.Digest {
	return n.cfg.Fingerprint(n.digest)
}

// identifierNames lists every name bound or referenced in file: identifier
// expressions and patterns, function names and labels.
func identifierNames(b *ast.Builder, file ast.FileID) []string {
	seen := make(map[string]struct{})
	var out []string
	var walk func(s ast.Selectable)
	walk = func(s ast.Selectable) {
		for _, a := range selector.Attrs(b, s) {
			if a.Name != "name" {
				continue
			}
			if _, dup := seen[a.Value]; !dup {
				seen[a.Value] = struct{}{}
				out = append(out, a.Value)
			}
		}
		for _, c := range selector.Children(b, s) {
			walk(c)
		}
	}
	walk(ast.ProgramSel(file))
	return out
}
