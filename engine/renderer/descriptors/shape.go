package descriptors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

/**
 * @brief The canonical, order-independent structure of one descriptor
 * set. Bindings are kept sorted by slot index; two shapes built from
 * the same bindings in any insertion order are equal.
 */
type Shape struct {
	bindings []metadata.LayoutBinding
}

// NewShape canonicalizes the given bindings into a Shape. It fails with
// ErrInvalidShape if two bindings share a slot index.
func NewShape(bindings []metadata.LayoutBinding) (*Shape, error) {
	shape := &Shape{
		bindings: make([]metadata.LayoutBinding, len(bindings)),
	}
	copy(shape.bindings, bindings)

	// ensure bindings are in strictly increasing slot order
	sort.Slice(shape.bindings, func(i, j int) bool {
		return shape.bindings[i].Binding < shape.bindings[j].Binding
	})
	for i := 1; i < len(shape.bindings); i++ {
		if shape.bindings[i].Binding == shape.bindings[i-1].Binding {
			err := fmt.Errorf("%w: slot %d bound twice", ErrInvalidShape, shape.bindings[i].Binding)
			core.LogError(err.Error())
			return nil, err
		}
	}
	return shape, nil
}

// Bindings returns the bindings in canonical slot order. The returned
// slice is owned by the shape and must not be mutated.
func (s *Shape) Bindings() []metadata.LayoutBinding {
	return s.bindings
}

// key encodes the shape into a deterministic cache key covering exactly
// (slot, kind, count, stages) per binding.
func (s *Shape) key() string {
	var sb strings.Builder
	for _, b := range s.bindings {
		fmt.Fprintf(&sb, "%d/%d/%d/%d;", b.Binding, b.Kind, b.Count, b.Stages)
	}
	return sb.String()
}
