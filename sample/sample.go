package sample

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/vecsift/vecsift/export"
)

// DefaultSize is the fixture size used when the caller does not choose one.
const DefaultSize = 20

// ErrInvalidSize is returned when the requested sample size is not positive.
var ErrInvalidSize = errors.New("sample size must be positive")

// SampleSizeError indicates a request exceeding the available records.
type SampleSizeError struct {
	Requested int
	Available int
}

func (e *SampleSizeError) Error() string {
	return fmt.Sprintf("not enough records to sample: requested %d, have %d", e.Requested, e.Available)
}

// Records draws n entries uniformly without replacement.
func Records(set export.Set, n int, rng *rand.Rand) (export.Set, error) {
	if n < 1 {
		return nil, ErrInvalidSize
	}
	if n > len(set) {
		return nil, &SampleSizeError{Requested: n, Available: len(set)}
	}

	out := make(export.Set, n)
	for i, idx := range rng.Perm(len(set))[:n] {
		out[i] = set[idx]
	}
	return out, nil
}

// FromFile reads the export artifact at src, samples n records with the
// given seed and writes them as indented JSON to dst, creating parent
// directories as needed.
func FromFile(src, dst string, n int, seed int64) error {
	set, err := export.ReadSetFile(src)
	if err != nil {
		return fmt.Errorf("sample: read %s: %w", filepath.Base(src), err)
	}

	picked, err := Records(set, n, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}

	data, err := json.MarshalIndent(picked, "", "  ")
	if err != nil {
		return fmt.Errorf("sample: encode: %w", err)
	}

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(dst, data, 0o644)
}
