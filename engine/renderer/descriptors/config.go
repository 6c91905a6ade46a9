package descriptors

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/math"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

/**
 * @brief The number of descriptor sets a single pool can hold. Per-kind
 * descriptor capacity is this unit scaled by the kind's weight.
 * @todo TODO: make configurable per pipeline once pipeline configs land
 */
const DefaultPoolUnitSize uint32 = 1000

// PoolWeight pairs a resource kind with its relative share of one
// pool's capacity.
type PoolWeight struct {
	Kind   metadata.ResourceKind
	Weight float32
}

var defaultPoolWeights = []PoolWeight{
	{metadata.ResourceKindSampler, 0.5},
	{metadata.ResourceKindCombinedImageSampler, 4.0},
	{metadata.ResourceKindSampledImage, 4.0},
	{metadata.ResourceKindStorageImage, 1.0},
	{metadata.ResourceKindUniformTexelBuffer, 1.0},
	{metadata.ResourceKindStorageTexelBuffer, 1.0},
	{metadata.ResourceKindUniformBuffer, 2.0},
	{metadata.ResourceKindStorageBuffer, 2.0},
	{metadata.ResourceKindUniformBufferDynamic, 1.0},
	{metadata.ResourceKindStorageBufferDynamic, 1.0},
	{metadata.ResourceKindInputAttachment, 0.5},
}

/**
 * @brief The static sizing policy stamped onto every pool the allocator
 * creates. The allocator never resizes pools; it only creates more of
 * them with this exact table.
 */
type PoolSizing struct {
	UnitSize uint32
	Weights  []PoolWeight
}

// DefaultPoolSizing returns the built-in weight table.
func DefaultPoolSizing() PoolSizing {
	weights := make([]PoolWeight, len(defaultPoolWeights))
	copy(weights, defaultPoolWeights)
	return PoolSizing{
		UnitSize: DefaultPoolUnitSize,
		Weights:  weights,
	}
}

// Sizes expands the weight table into absolute per-kind capacities.
// Every kind keeps a capacity of at least one descriptor.
func (p PoolSizing) Sizes() []metadata.PoolSize {
	sizes := make([]metadata.PoolSize, 0, len(p.Weights))
	for _, w := range p.Weights {
		count := uint32(w.Weight * float32(p.UnitSize))
		sizes = append(sizes, metadata.PoolSize{
			Kind:  w.Kind,
			Count: math.Max(count, 1),
		})
	}
	return sizes
}

type poolSizingFile struct {
	UnitSize uint32             `toml:"unit_size"`
	Weights  map[string]float32 `toml:"weights"`
}

// LoadPoolSizing reads a sizing policy from a TOML file. Missing fields
// fall back to the defaults; weights are keyed by resource kind name,
// e.g.
//
//	unit_size = 500
//	[weights]
//	uniform_buffer = 3.0
func LoadPoolSizing(path string) (PoolSizing, error) {
	sizing := DefaultPoolSizing()

	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read pool sizing config: %w", err)
		core.LogError(err.Error())
		return sizing, err
	}
	var file poolSizingFile
	if err := toml.Unmarshal(data, &file); err != nil {
		err = fmt.Errorf("failed to parse pool sizing config: %w", err)
		core.LogError(err.Error())
		return sizing, err
	}

	if file.UnitSize > 0 {
		sizing.UnitSize = file.UnitSize
	}
	for name, weight := range file.Weights {
		kind, err := metadata.ParseResourceKind(name)
		if err != nil {
			core.LogError(err.Error())
			return sizing, err
		}
		if weight < 0 {
			err = fmt.Errorf("pool weight for %s must not be negative, got %f", name, weight)
			core.LogError(err.Error())
			return sizing, err
		}
		for i := range sizing.Weights {
			if sizing.Weights[i].Kind == kind {
				sizing.Weights[i].Weight = weight
				break
			}
		}
	}
	return sizing, nil
}
