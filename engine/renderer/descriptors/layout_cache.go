package descriptors

import (
	"fmt"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

/**
 * @brief Deduplicates descriptor set layouts by shape. Structurally
 * equal shapes always resolve to the same driver layout handle, so
 * layouts can be compared by handle when building pipelines.
 *
 * Not safe for concurrent use; see Manager.
 */
type LayoutCache struct {
	driver  renderer.Driver
	layouts map[string]renderer.DescriptorLayout
}

func NewLayoutCache(driver renderer.Driver) *LayoutCache {
	return &LayoutCache{
		driver:  driver,
		layouts: make(map[string]renderer.DescriptorLayout),
	}
}

// GetLayout resolves the bindings to their canonical layout. The first
// call for a given shape creates the layout through the driver; every
// later call with an equal shape (in any binding order) returns the
// cached handle without touching the driver.
func (lc *LayoutCache) GetLayout(bindings []metadata.LayoutBinding) (renderer.DescriptorLayout, error) {
	shape, err := NewShape(bindings)
	if err != nil {
		return nil, err
	}

	key := shape.key()
	if layout, ok := lc.layouts[key]; ok {
		return layout, nil
	}

	layout, err := lc.driver.CreateDescriptorLayout(shape.Bindings())
	if err != nil {
		err = fmt.Errorf("failed to create descriptor set layout: %w", err)
		core.LogError(err.Error())
		return nil, err
	}
	lc.layouts[key] = layout
	return layout, nil
}

// Len returns the number of distinct layouts currently cached.
func (lc *LayoutCache) Len() int {
	return len(lc.layouts)
}

// Clear destroys every cached layout through the driver and empties the
// cache. Teardown only: the caller must guarantee no live descriptor
// set still references a cached layout.
func (lc *LayoutCache) Clear() {
	for key, layout := range lc.layouts {
		lc.driver.DestroyDescriptorLayout(layout)
		delete(lc.layouts, key)
	}
}
