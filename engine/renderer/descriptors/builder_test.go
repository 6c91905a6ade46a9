package descriptors

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/astra/engine/renderer"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

func newBuildEnv() (*stubDriver, *LayoutCache, *Allocator) {
	driver := newStubDriver()
	return driver, NewLayoutCache(driver), NewAllocator(driver, DefaultPoolSizing())
}

func TestBuilder_BatchesAllWritesIntoOneUpdate(t *testing.T) {
	driver, cache, allocator := newBuildEnv()

	builder := NewBuilder(cache, allocator).
		BindBuffer(0, metadata.BufferBindingInfo{Range: 256}, metadata.ResourceKindUniformBuffer, metadata.ShaderStageVertex).
		BindBuffer(1, metadata.BufferBindingInfo{Range: 1024}, metadata.ResourceKindStorageBuffer, metadata.ShaderStageCompute).
		BindImage(2, metadata.ImageBindingInfo{}, metadata.ResourceKindCombinedImageSampler, metadata.ShaderStageFragment)

	set, layout, err := builder.Build()
	require.NoError(t, err)
	require.NotNil(t, set)
	require.NotNil(t, layout)

	require.Equal(t, 1, driver.updateCalls)
	require.Len(t, driver.lastWrites, 3)
	require.Same(t, set, driver.lastSet)
}

func TestBuilder_BindCallsTouchNoDriver(t *testing.T) {
	driver, cache, allocator := newBuildEnv()

	NewBuilder(cache, allocator).
		BindBuffer(0, metadata.BufferBindingInfo{}, metadata.ResourceKindUniformBuffer, metadata.ShaderStageVertex).
		BindImage(1, metadata.ImageBindingInfo{}, metadata.ResourceKindSampledImage, metadata.ShaderStageFragment)

	require.Equal(t, 0, driver.createLayoutCalls)
	require.Equal(t, 0, driver.createPoolCalls)
	require.Equal(t, 0, driver.allocateCalls)
	require.Equal(t, 0, driver.updateCalls)
}

func TestBuilder_DuplicateSlotFailsBeforeDriver(t *testing.T) {
	driver, cache, allocator := newBuildEnv()

	_, _, err := NewBuilder(cache, allocator).
		BindBuffer(3, metadata.BufferBindingInfo{}, metadata.ResourceKindUniformBuffer, metadata.ShaderStageVertex).
		BindImage(3, metadata.ImageBindingInfo{}, metadata.ResourceKindSampledImage, metadata.ShaderStageFragment).
		Build()
	require.ErrorIs(t, err, ErrInvalidShape)

	require.Equal(t, 0, driver.createLayoutCalls)
	require.Equal(t, 0, driver.allocateCalls)
	require.Equal(t, 0, driver.updateCalls)
}

func TestBuilder_ConsumedByBuild(t *testing.T) {
	_, cache, allocator := newBuildEnv()

	builder := NewBuilder(cache, allocator).
		BindBuffer(0, metadata.BufferBindingInfo{}, metadata.ResourceKindUniformBuffer, metadata.ShaderStageVertex)

	_, _, err := builder.Build()
	require.NoError(t, err)

	_, _, err = builder.Build()
	require.ErrorIs(t, err, ErrBuilderConsumed)
}

func TestBuilder_AllocationErrorPropagates(t *testing.T) {
	driver, cache, allocator := newBuildEnv()
	driver.allocScript = []error{renderer.ErrOutOfPoolMemory, renderer.ErrOutOfPoolMemory}

	_, _, err := NewBuilder(cache, allocator).
		BindBuffer(0, metadata.BufferBindingInfo{}, metadata.ResourceKindUniformBuffer, metadata.ShaderStageVertex).
		Build()
	require.ErrorIs(t, err, ErrUnrecoverable)
	require.Equal(t, 0, driver.updateCalls)
}

func TestBuilder_UpdateErrorPropagates(t *testing.T) {
	driver, cache, allocator := newBuildEnv()
	driver.updateErr = errDeviceLost

	_, _, err := NewBuilder(cache, allocator).
		BindBuffer(0, metadata.BufferBindingInfo{}, metadata.ResourceKindUniformBuffer, metadata.ShaderStageVertex).
		Build()
	require.ErrorIs(t, err, errDeviceLost)
}

func TestBuilder_ShapeCompatibleBuildsShareLayout(t *testing.T) {
	driver, cache, allocator := newBuildEnv()

	_, first, err := NewBuilder(cache, allocator).
		BindBuffer(0, metadata.BufferBindingInfo{Range: 64}, metadata.ResourceKindUniformBuffer, metadata.ShaderStageVertex).
		Build()
	require.NoError(t, err)

	_, second, err := NewBuilder(cache, allocator).
		BindBuffer(0, metadata.BufferBindingInfo{Range: 4096}, metadata.ResourceKindUniformBuffer, metadata.ShaderStageVertex).
		Build()
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, driver.createLayoutCalls)
	require.Equal(t, 2, driver.allocateCalls)
}
