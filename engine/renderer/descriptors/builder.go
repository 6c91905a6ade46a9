package descriptors

import (
	"fmt"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

/**
 * @brief A short-lived session that accumulates bindings plus their
 * data writes, then commits them as one fully written descriptor set.
 *
 * Bind calls are purely local; the driver is only touched in Build,
 * which resolves the layout, allocates the set and applies every
 * pending write in a single driver update. A builder is consumed by
 * Build and cannot be reused.
 */
type Builder struct {
	cache     *LayoutCache
	allocator *Allocator
	bindings  []metadata.LayoutBinding
	writes    []metadata.DescriptorWrite
	consumed  bool
}

func NewBuilder(cache *LayoutCache, allocator *Allocator) *Builder {
	return &Builder{
		cache:     cache,
		allocator: allocator,
	}
}

// BindBuffer records a buffer resource at the given slot. Binding the
// same slot twice in one session is a caller error reported by Build.
func (b *Builder) BindBuffer(binding uint32, bufferInfo metadata.BufferBindingInfo, kind metadata.ResourceKind, stages metadata.ShaderStageFlags) *Builder {
	b.bindings = append(b.bindings, metadata.LayoutBinding{
		Binding: binding,
		Kind:    kind,
		Count:   1,
		Stages:  stages,
	})
	b.writes = append(b.writes, metadata.DescriptorWrite{
		Binding:    binding,
		Kind:       kind,
		BufferInfo: &bufferInfo,
	})
	return b
}

// BindImage records an image resource at the given slot.
func (b *Builder) BindImage(binding uint32, imageInfo metadata.ImageBindingInfo, kind metadata.ResourceKind, stages metadata.ShaderStageFlags) *Builder {
	b.bindings = append(b.bindings, metadata.LayoutBinding{
		Binding: binding,
		Kind:    kind,
		Count:   1,
		Stages:  stages,
	})
	b.writes = append(b.writes, metadata.DescriptorWrite{
		Binding:   binding,
		Kind:      kind,
		ImageInfo: &imageInfo,
	})
	return b
}

// Build commits the session: resolve the canonical layout, allocate a
// set for it and apply all pending writes with one driver update. The
// returned layout can be reused for pipeline creation; a set is never
// returned partially written.
func (b *Builder) Build() (renderer.DescriptorSet, renderer.DescriptorLayout, error) {
	if b.consumed {
		core.LogError(ErrBuilderConsumed.Error())
		return nil, nil, ErrBuilderConsumed
	}
	b.consumed = true

	layout, err := b.cache.GetLayout(b.bindings)
	if err != nil {
		return nil, nil, err
	}

	set, err := b.allocator.Allocate(layout)
	if err != nil {
		return nil, nil, err
	}

	if err := b.allocator.driver.UpdateDescriptorSet(set, b.writes); err != nil {
		err = fmt.Errorf("failed to update descriptor set: %w", err)
		core.LogError(err.Error())
		return nil, nil, err
	}
	return set, layout, nil
}
