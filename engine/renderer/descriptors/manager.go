package descriptors

import (
	"github.com/spaghettifunk/astra/engine/renderer"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

/**
 * @brief Owns the layout cache and the pool allocator and hands out
 * builder sessions.
 *
 * The manager and everything it owns are single-writer state: one
 * logical owner (typically the frame preparation path) issues all
 * Builder/Allocate/ResetPools calls serially. Concurrent use requires
 * external locking or one manager per thread.
 */
type Manager struct {
	Allocator   *Allocator
	LayoutCache *LayoutCache

	/** @brief The pre-resolved layout for frame-global data:
	 * slot 0, a uniform buffer visible to vertex and fragment stages. */
	GlobalLayout renderer.DescriptorLayout
}

func NewManager(driver renderer.Driver, sizing PoolSizing) (*Manager, error) {
	allocator := NewAllocator(driver, sizing)
	cache := NewLayoutCache(driver)

	globalLayout, err := cache.GetLayout([]metadata.LayoutBinding{
		{
			Binding: 0,
			Kind:    metadata.ResourceKindUniformBuffer,
			Count:   1,
			Stages:  metadata.ShaderStageVertex | metadata.ShaderStageFragment,
		},
	})
	if err != nil {
		return nil, err
	}

	return &Manager{
		Allocator:    allocator,
		LayoutCache:  cache,
		GlobalLayout: globalLayout,
	}, nil
}

// Builder opens a new descriptor build session against the shared cache
// and allocator.
func (m *Manager) Builder() *Builder {
	return NewBuilder(m.LayoutCache, m.Allocator)
}

// ResetPools recycles every pool used since the last reset. All sets
// built since then are invalid afterwards.
func (m *Manager) ResetPools() error {
	return m.Allocator.ResetPools()
}

// Shutdown tears the subsystem down: every pool is reset and destroyed
// before the cached layouts are released.
func (m *Manager) Shutdown() error {
	if err := m.Allocator.ResetPools(); err != nil {
		return err
	}
	m.Allocator.Destroy()
	m.LayoutCache.Clear()
	return nil
}
