package descriptors

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer"
)

// trackedPool pairs a driver pool handle with a stable identity used in
// log lines. The driver handle itself is opaque and unprintable.
type trackedPool struct {
	handle renderer.DescriptorPool
	id     string
}

/**
 * @brief Serves descriptor sets out of a growing collection of
 * fixed-capacity pools.
 *
 * A pool lives in exactly one place at a time: the current allocation
 * target, the used list (served allocations since the last reset) or
 * the free list (reset, ready for reuse). Sets are never freed one by
 * one; ResetPools recycles every used pool at once.
 *
 * Not safe for concurrent use; see Manager.
 */
type Allocator struct {
	driver    renderer.Driver
	sizing    PoolSizing
	current   *trackedPool
	usedPools []*trackedPool
	freePools []*trackedPool
}

func NewAllocator(driver renderer.Driver, sizing PoolSizing) *Allocator {
	return &Allocator{
		driver: driver,
		sizing: sizing,
	}
}

// Allocate returns a fresh descriptor set for the given layout. When
// the current pool is fragmented or out of space it is left in the used
// list, a brand-new pool becomes current and the allocation is retried
// exactly once. Any other failure, or a failure surviving the retry,
// is ErrUnrecoverable.
func (a *Allocator) Allocate(layout renderer.DescriptorLayout) (renderer.DescriptorSet, error) {
	current := a.current
	if current == nil {
		var err error
		if current, err = a.allocateNewCurrentPool(); err != nil {
			return nil, err
		}
	}

	set, err := a.driver.AllocateDescriptorSet(current.handle, layout)
	if err == nil {
		return set, nil
	}
	if !renderer.IsPoolExhausted(err) {
		err = fmt.Errorf("%w: %v", ErrUnrecoverable, err)
		core.LogError(err.Error())
		return nil, err
	}

	// The current pool cannot serve this layout anymore. It stays in
	// the used list; allocate out of a brand-new pool and retry once.
	core.LogDebug("descriptor pool %s exhausted, growing pool collection", current.id)
	newPool, err := a.allocateNewCurrentPool()
	if err != nil {
		return nil, err
	}
	set, err = a.driver.AllocateDescriptorSet(newPool.handle, layout)
	if err != nil {
		err = fmt.Errorf("%w: allocation failed again after pool growth: %v", ErrUnrecoverable, err)
		core.LogError(err.Error())
		return nil, err
	}
	return set, nil
}

// ResetPools recycles every used pool through the driver and moves it
// to the free list, then clears the current pointer. Every set
// allocated since the previous reset is invalid afterwards; the caller
// must guarantee none of them is still referenced by in-flight work.
func (a *Allocator) ResetPools() error {
	a.current = nil
	for len(a.usedPools) > 0 {
		pool := a.usedPools[len(a.usedPools)-1]
		if err := a.driver.ResetDescriptorPool(pool.handle); err != nil {
			// Pools already recycled stay in the free list; this one
			// and any remaining ones stay used so a retry resumes here.
			err = fmt.Errorf("failed to reset descriptor pool %s: %w", pool.id, err)
			core.LogError(err.Error())
			return err
		}
		a.usedPools = a.usedPools[:len(a.usedPools)-1]
		a.freePools = append(a.freePools, pool)
	}
	a.usedPools = nil
	return nil
}

// Destroy releases every pool owned by the allocator. The allocator
// must not be used afterwards.
func (a *Allocator) Destroy() {
	for _, pool := range a.usedPools {
		a.driver.DestroyDescriptorPool(pool.handle)
	}
	for _, pool := range a.freePools {
		a.driver.DestroyDescriptorPool(pool.handle)
	}
	a.usedPools = nil
	a.freePools = nil
	a.current = nil
}

func (a *Allocator) allocateNewCurrentPool() (*trackedPool, error) {
	pool, err := a.grabPool()
	if err != nil {
		return nil, err
	}
	a.current = pool
	a.usedPools = append(a.usedPools, pool)
	return pool, nil
}

// grabPool reuses a free pool when one exists, otherwise creates a new
// one with the static sizing table.
func (a *Allocator) grabPool() (*trackedPool, error) {
	if n := len(a.freePools); n > 0 {
		pool := a.freePools[n-1]
		a.freePools = a.freePools[:n-1]
		return pool, nil
	}

	handle, err := a.driver.CreateDescriptorPool(a.sizing.Sizes(), a.sizing.UnitSize)
	if err != nil {
		err = fmt.Errorf("failed to create descriptor pool: %w", err)
		core.LogError(err.Error())
		return nil, err
	}
	pool := &trackedPool{
		handle: handle,
		id:     uuid.New().String(),
	}
	core.LogDebug("created descriptor pool %s (unit size %d)", pool.id, a.sizing.UnitSize)
	return pool, nil
}
