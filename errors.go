package vecsift

import (
	"github.com/vecsift/vecsift/curate"
	"github.com/vecsift/vecsift/similarity"
)

// Re-exported errors so callers of the top-level API don't need to
// import the subpackages for common error checks.
var (
	// ErrInvalidK indicates a non-positive k passed to a top-k query.
	ErrInvalidK = similarity.ErrInvalidK

	// ErrInvalidCap indicates a non-positive export cap.
	ErrInvalidCap = curate.ErrInvalidCap
)

// ShapeMismatchError indicates two vectors of unequal dimensionality.
type ShapeMismatchError = similarity.ShapeMismatchError
