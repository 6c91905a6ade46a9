package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

func DescriptorTypeFromKind(kind metadata.ResourceKind) vk.DescriptorType {
	switch kind {
	case metadata.ResourceKindSampler:
		return vk.DescriptorTypeSampler
	case metadata.ResourceKindCombinedImageSampler:
		return vk.DescriptorTypeCombinedImageSampler
	case metadata.ResourceKindSampledImage:
		return vk.DescriptorTypeSampledImage
	case metadata.ResourceKindStorageImage:
		return vk.DescriptorTypeStorageImage
	case metadata.ResourceKindUniformTexelBuffer:
		return vk.DescriptorTypeUniformTexelBuffer
	case metadata.ResourceKindStorageTexelBuffer:
		return vk.DescriptorTypeStorageTexelBuffer
	case metadata.ResourceKindUniformBuffer:
		return vk.DescriptorTypeUniformBuffer
	case metadata.ResourceKindStorageBuffer:
		return vk.DescriptorTypeStorageBuffer
	case metadata.ResourceKindUniformBufferDynamic:
		return vk.DescriptorTypeUniformBufferDynamic
	case metadata.ResourceKindStorageBufferDynamic:
		return vk.DescriptorTypeStorageBufferDynamic
	case metadata.ResourceKindInputAttachment:
		return vk.DescriptorTypeInputAttachment
	default:
		return vk.DescriptorTypeUniformBuffer
	}
}

func ShaderStageFlagsFromStages(stages metadata.ShaderStageFlags) vk.ShaderStageFlags {
	var flags vk.ShaderStageFlags
	if stages&metadata.ShaderStageVertex != 0 {
		flags |= vk.ShaderStageFlags(vk.ShaderStageVertexBit)
	}
	if stages&metadata.ShaderStageTessellationControl != 0 {
		flags |= vk.ShaderStageFlags(vk.ShaderStageTessellationControlBit)
	}
	if stages&metadata.ShaderStageTessellationEvaluation != 0 {
		flags |= vk.ShaderStageFlags(vk.ShaderStageTessellationEvaluationBit)
	}
	if stages&metadata.ShaderStageGeometry != 0 {
		flags |= vk.ShaderStageFlags(vk.ShaderStageGeometryBit)
	}
	if stages&metadata.ShaderStageFragment != 0 {
		flags |= vk.ShaderStageFlags(vk.ShaderStageFragmentBit)
	}
	if stages&metadata.ShaderStageCompute != 0 {
		flags |= vk.ShaderStageFlags(vk.ShaderStageComputeBit)
	}
	return flags
}
