package fuzztests

import (
	"context"
	"errors"
	"testing"

	"deob/internal/driver"
	"deob/internal/project"
)

// FuzzNormalizeReparses checks that every program the parser accepts
// normalizes without panicking and prints to text that parses again.
func FuzzNormalizeReparses(f *testing.F) {
	addCorpusSeeds(f)
	cfg := project.Default()
	opts := driver.Options{
		MaxDiagnostics: 16,
		Normalize:      cfg.Normalize,
		Format:         cfg.Format,
		Query:          cfg.Query,
		Jobs:           1,
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx := context.Background()

		res, err := driver.NormalizeSource(ctx, "fuzz.js", input, opts)
		switch {
		case errors.Is(err, driver.ErrParse), errors.Is(err, driver.ErrNamePoolExhausted):
			return
		case err != nil:
			t.Fatalf("normalize: %v\ninput: %q", err, truncateForLog(input, 200))
		}

		if _, err := driver.ParseSource(ctx, "fuzz.anf.js", res.Output, 16); err != nil {
			t.Fatalf("normalized output does not parse: %v\ninput: %q\noutput: %q",
				err, truncateForLog(input, 200), truncateForLog(res.Output, 400))
		}
	})
}
