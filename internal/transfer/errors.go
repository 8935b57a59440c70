package transfer

import (
	"errors"
	"fmt"

	"github.com/Simouie/Project-Furnace/internal/document"
)

// Skippable input errors. The object is left untouched and the run continues.
var (
	ErrNotMesh          = errors.New("object is not a mesh")
	ErrHidden           = errors.New("object is hidden")
	ErrNoUsableMaterial = errors.New("object has no usable material")
)

// ErrFlagCollision reports materials on one object that ask for different
// object-level properties. The first in slot order is applied.
var ErrFlagCollision = errors.New("unsupported flag combination")

// ErrUnstablePartition reports a split object that would split again.
var ErrUnstablePartition = errors.New("partition is not stable")

// ErrResetUnsupported is returned by Reset for documents that cannot clear
// face properties.
var ErrResetUnsupported = errors.New("document cannot reset face properties")

// IsSkippable reports whether err only means the object was not eligible.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrNotMesh) || errors.Is(err, ErrHidden) || errors.Is(err, ErrNoUsableMaterial)
}

// WriteFailure is a document call that failed for one object. The object's
// effects are not committed.
type WriteFailure struct {
	Object document.ObjectID
	Name   string
	Op     string // "write", "split", "scene" or "reset"
	Key    string
	Err    error
}

func (f *WriteFailure) Error() string {
	if f.Key != "" {
		return fmt.Sprintf("%s %s (%s): %v", f.Op, f.Name, f.Key, f.Err)
	}
	return fmt.Sprintf("%s %s: %v", f.Op, f.Name, f.Err)
}

func (f *WriteFailure) Unwrap() error {
	return f.Err
}
