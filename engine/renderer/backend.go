package renderer

import (
	"errors"

	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

// Opaque driver-side handles. Their concrete types belong to the active
// Driver implementation; the frontend only stores and compares them.
type (
	DescriptorLayout interface{}
	DescriptorPool   interface{}
	DescriptorSet    interface{}
)

// Exhaustion-class allocation failures. A Driver must return one of
// these (possibly wrapped) when a pool cannot serve another set but a
// fresh pool could.
var (
	ErrFragmentedPool  = errors.New("descriptor pool fragmented")
	ErrOutOfPoolMemory = errors.New("descriptor pool out of memory")
)

// IsPoolExhausted reports whether an allocation failure can be recovered
// from by allocating out of a brand-new pool.
func IsPoolExhausted(err error) bool {
	return errors.Is(err, ErrFragmentedPool) || errors.Is(err, ErrOutOfPoolMemory)
}

// Driver is the boundary to the device backend that actually creates
// descriptor objects. Implementations wrap a live graphics device; the
// frontend never talks to the device directly.
type Driver interface {
	CreateDescriptorLayout(bindings []metadata.LayoutBinding) (DescriptorLayout, error)
	DestroyDescriptorLayout(layout DescriptorLayout)
	CreateDescriptorPool(sizes []metadata.PoolSize, maxSets uint32) (DescriptorPool, error)
	DestroyDescriptorPool(pool DescriptorPool)
	// ResetDescriptorPool returns every set allocated from the pool to
	// the pool in one operation. All handles previously allocated from
	// it are invalid afterwards.
	ResetDescriptorPool(pool DescriptorPool) error
	AllocateDescriptorSet(pool DescriptorPool, layout DescriptorLayout) (DescriptorSet, error)
	// UpdateDescriptorSet applies all writes to the set in a single
	// driver call.
	UpdateDescriptorSet(set DescriptorSet, writes []metadata.DescriptorWrite) error
}
