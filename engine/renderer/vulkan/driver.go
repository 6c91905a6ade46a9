package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

// VulkanDriver implements renderer.Driver on top of a borrowed logical
// device. Handles passed through the renderer interfaces are the raw
// vk handle types (vk.DescriptorSetLayout, vk.DescriptorPool,
// vk.DescriptorSet, vk.Buffer, vk.Sampler, vk.ImageView).
type VulkanDriver struct {
	context *VulkanContext
}

func NewDriver(device vk.Device, allocator *vk.AllocationCallbacks) *VulkanDriver {
	return &VulkanDriver{
		context: &VulkanContext{
			LogicalDevice: device,
			Allocator:     allocator,
		},
	}
}

func (d *VulkanDriver) CreateDescriptorLayout(bindings []metadata.LayoutBinding) (renderer.DescriptorLayout, error) {
	layoutBindings := make([]vk.DescriptorSetLayoutBinding, len(bindings))
	for i, b := range bindings {
		layoutBindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         b.Binding,
			DescriptorType:  DescriptorTypeFromKind(b.Kind),
			DescriptorCount: b.Count,
			StageFlags:      ShaderStageFlagsFromStages(b.Stages),
		}
	}
	layoutCreateInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(layoutBindings)),
		PBindings:    layoutBindings,
	}

	var layout vk.DescriptorSetLayout
	if res := vk.CreateDescriptorSetLayout(d.context.LogicalDevice, &layoutCreateInfo, d.context.Allocator, &layout); res != vk.Success {
		err := fmt.Errorf("failed to create descriptor set layout")
		core.LogError(err.Error())
		return nil, err
	}
	return layout, nil
}

func (d *VulkanDriver) DestroyDescriptorLayout(layout renderer.DescriptorLayout) {
	vk.DestroyDescriptorSetLayout(d.context.LogicalDevice, layout.(vk.DescriptorSetLayout), d.context.Allocator)
}

func (d *VulkanDriver) CreateDescriptorPool(sizes []metadata.PoolSize, maxSets uint32) (renderer.DescriptorPool, error) {
	poolSizes := make([]vk.DescriptorPoolSize, len(sizes))
	for i, s := range sizes {
		poolSizes[i] = vk.DescriptorPoolSize{
			Type:            DescriptorTypeFromKind(s.Kind),
			DescriptorCount: s.Count,
		}
	}
	poolCreateInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       maxSets,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    poolSizes,
	}

	var pool vk.DescriptorPool
	if res := vk.CreateDescriptorPool(d.context.LogicalDevice, &poolCreateInfo, d.context.Allocator, &pool); res != vk.Success {
		err := fmt.Errorf("failed to create descriptor pool")
		core.LogError(err.Error())
		return nil, err
	}
	return pool, nil
}

func (d *VulkanDriver) DestroyDescriptorPool(pool renderer.DescriptorPool) {
	vk.DestroyDescriptorPool(d.context.LogicalDevice, pool.(vk.DescriptorPool), d.context.Allocator)
}

func (d *VulkanDriver) ResetDescriptorPool(pool renderer.DescriptorPool) error {
	if res := vk.ResetDescriptorPool(d.context.LogicalDevice, pool.(vk.DescriptorPool), 0); res != vk.Success {
		err := fmt.Errorf("failed to reset descriptor pool")
		core.LogError(err.Error())
		return err
	}
	return nil
}

func (d *VulkanDriver) AllocateDescriptorSet(pool renderer.DescriptorPool, layout renderer.DescriptorLayout) (renderer.DescriptorSet, error) {
	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool.(vk.DescriptorPool),
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout.(vk.DescriptorSetLayout)},
	}

	var set vk.DescriptorSet
	switch res := vk.AllocateDescriptorSets(d.context.LogicalDevice, &allocateInfo, &set); res {
	case vk.Success:
		return set, nil
	case vk.ErrorFragmentedPool:
		return nil, renderer.ErrFragmentedPool
	case vk.ErrorOutOfPoolMemory:
		return nil, renderer.ErrOutOfPoolMemory
	default:
		return nil, fmt.Errorf("failed to allocate descriptor set (VkResult %d)", res)
	}
}

func (d *VulkanDriver) UpdateDescriptorSet(set renderer.DescriptorSet, writes []metadata.DescriptorWrite) error {
	vkWrites := make([]vk.WriteDescriptorSet, len(writes))
	for i, w := range writes {
		vkWrite := vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set.(vk.DescriptorSet),
			DstBinding:      w.Binding,
			DescriptorCount: 1,
			DescriptorType:  DescriptorTypeFromKind(w.Kind),
		}
		switch {
		case w.BufferInfo != nil:
			buffer, ok := w.BufferInfo.Buffer.(vk.Buffer)
			if !ok {
				err := fmt.Errorf("descriptor write for slot %d does not carry a vk.Buffer", w.Binding)
				core.LogError(err.Error())
				return err
			}
			vkWrite.PBufferInfo = []vk.DescriptorBufferInfo{
				{
					Buffer: buffer,
					Offset: vk.DeviceSize(w.BufferInfo.Offset),
					Range:  vk.DeviceSize(w.BufferInfo.Range),
				},
			}
		case w.ImageInfo != nil:
			imageInfo := vk.DescriptorImageInfo{
				ImageLayout: vk.ImageLayout(w.ImageInfo.ImageLayout),
			}
			if w.ImageInfo.Sampler != nil {
				sampler, ok := w.ImageInfo.Sampler.(vk.Sampler)
				if !ok {
					err := fmt.Errorf("descriptor write for slot %d does not carry a vk.Sampler", w.Binding)
					core.LogError(err.Error())
					return err
				}
				imageInfo.Sampler = sampler
			}
			if w.ImageInfo.ImageView != nil {
				view, ok := w.ImageInfo.ImageView.(vk.ImageView)
				if !ok {
					err := fmt.Errorf("descriptor write for slot %d does not carry a vk.ImageView", w.Binding)
					core.LogError(err.Error())
					return err
				}
				imageInfo.ImageView = view
			}
			vkWrite.PImageInfo = []vk.DescriptorImageInfo{imageInfo}
		default:
			err := fmt.Errorf("descriptor write for slot %d carries no resource", w.Binding)
			core.LogError(err.Error())
			return err
		}
		vkWrites[i] = vkWrite
	}

	vk.UpdateDescriptorSets(d.context.LogicalDevice, uint32(len(vkWrites)), vkWrites, 0, nil)
	return nil
}
