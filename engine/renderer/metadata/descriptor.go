package metadata

import "fmt"

/**
 * @brief The kind of resource a descriptor binding refers to.
 * Mirrors the driver-side descriptor types one to one.
 */
type ResourceKind uint32

const (
	ResourceKindSampler ResourceKind = iota
	ResourceKindCombinedImageSampler
	ResourceKindSampledImage
	ResourceKindStorageImage
	ResourceKindUniformTexelBuffer
	ResourceKindStorageTexelBuffer
	ResourceKindUniformBuffer
	ResourceKindStorageBuffer
	ResourceKindUniformBufferDynamic
	ResourceKindStorageBufferDynamic
	ResourceKindInputAttachment
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindSampler:
		return "sampler"
	case ResourceKindCombinedImageSampler:
		return "combined_image_sampler"
	case ResourceKindSampledImage:
		return "sampled_image"
	case ResourceKindStorageImage:
		return "storage_image"
	case ResourceKindUniformTexelBuffer:
		return "uniform_texel_buffer"
	case ResourceKindStorageTexelBuffer:
		return "storage_texel_buffer"
	case ResourceKindUniformBuffer:
		return "uniform_buffer"
	case ResourceKindStorageBuffer:
		return "storage_buffer"
	case ResourceKindUniformBufferDynamic:
		return "uniform_buffer_dynamic"
	case ResourceKindStorageBufferDynamic:
		return "storage_buffer_dynamic"
	case ResourceKindInputAttachment:
		return "input_attachment"
	default:
		return "unknown"
	}
}

// ParseResourceKind is the inverse of ResourceKind.String. It is used
// when kinds are named in configuration files.
func ParseResourceKind(name string) (ResourceKind, error) {
	for k := ResourceKindSampler; k <= ResourceKindInputAttachment; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown resource kind %q", name)
}

/**
 * @brief Bit set of the shader stages that may read a binding.
 */
type ShaderStageFlags uint32

const (
	ShaderStageVertex                 ShaderStageFlags = 1 << 0
	ShaderStageTessellationControl    ShaderStageFlags = 1 << 1
	ShaderStageTessellationEvaluation ShaderStageFlags = 1 << 2
	ShaderStageGeometry               ShaderStageFlags = 1 << 3
	ShaderStageFragment               ShaderStageFlags = 1 << 4
	ShaderStageCompute                ShaderStageFlags = 1 << 5
)

/**
 * @brief One slot of a descriptor set layout. Equality is structural
 * over all four fields; two bindings with the same fields are the
 * same binding wherever they appear.
 */
type LayoutBinding struct {
	/** @brief The slot index, unique within one layout. */
	Binding uint32
	/** @brief The kind of resource bound at this slot. */
	Kind ResourceKind
	/** @brief The number of descriptors in this slot. */
	Count uint32
	/** @brief The shader stages that may read this slot. */
	Stages ShaderStageFlags
}

/**
 * @brief The capacity reserved in a descriptor pool for one resource kind.
 */
type PoolSize struct {
	Kind  ResourceKind
	Count uint32
}

/**
 * @brief Describes a buffer region bound to a descriptor slot. The
 * Buffer handle is opaque to the frontend; the active driver knows
 * its concrete type.
 */
type BufferBindingInfo struct {
	Buffer interface{}
	Offset uint64
	Range  uint64
}

/**
 * @brief Describes an image/sampler pair bound to a descriptor slot.
 * Handles are opaque to the frontend.
 */
type ImageBindingInfo struct {
	Sampler   interface{}
	ImageView interface{}
	/** @brief The driver-side image layout the view is in when read. */
	ImageLayout uint32
}

/**
 * @brief One pending slot write for a descriptor set. Exactly one of
 * BufferInfo/ImageInfo is set, matching the Kind.
 */
type DescriptorWrite struct {
	Binding    uint32
	Kind       ResourceKind
	BufferInfo *BufferBindingInfo
	ImageInfo  *ImageBindingInfo
}
