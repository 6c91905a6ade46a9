package vulkan

import (
	vk "github.com/goki/vulkan"
)

// VulkanContext carries the device state the driver operates on. The
// logical device is created and owned by the host application; the
// driver only borrows it.
type VulkanContext struct {
	LogicalDevice vk.Device
	Allocator     *vk.AllocationCallbacks
}
