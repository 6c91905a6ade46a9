package descriptors

import (
	"errors"

	"github.com/spaghettifunk/astra/engine/renderer"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

// errDeviceLost stands in for any driver failure outside the
// exhaustion classes.
var errDeviceLost = errors.New("device lost")

type stubLayout struct{ id int }
type stubPool struct{ id int }
type stubSet struct{ id int }

// stubDriver counts every driver call and can be scripted to fail
// allocations in a given order.
type stubDriver struct {
	createLayoutCalls int
	createLayoutErr   error
	destroyedLayouts  []renderer.DescriptorLayout

	createPoolCalls int
	createPoolErr   error
	destroyedPools  []renderer.DescriptorPool
	lastPoolSizes   []metadata.PoolSize
	lastMaxSets     uint32

	resetCalls   int
	resetsByPool map[*stubPool]int
	// resetScript is consumed one entry per ResetDescriptorPool call;
	// a nil entry (or an exhausted script) means success.
	resetScript []error

	allocateCalls int
	// allocScript is consumed one entry per AllocateDescriptorSet call;
	// a nil entry (or an exhausted script) means success.
	allocScript []error

	updateCalls int
	lastSet     renderer.DescriptorSet
	lastWrites  []metadata.DescriptorWrite
	updateErr   error
}

func newStubDriver() *stubDriver {
	return &stubDriver{
		resetsByPool: make(map[*stubPool]int),
	}
}

func (s *stubDriver) CreateDescriptorLayout(bindings []metadata.LayoutBinding) (renderer.DescriptorLayout, error) {
	s.createLayoutCalls++
	if s.createLayoutErr != nil {
		return nil, s.createLayoutErr
	}
	return &stubLayout{id: s.createLayoutCalls}, nil
}

func (s *stubDriver) DestroyDescriptorLayout(layout renderer.DescriptorLayout) {
	s.destroyedLayouts = append(s.destroyedLayouts, layout)
}

func (s *stubDriver) CreateDescriptorPool(sizes []metadata.PoolSize, maxSets uint32) (renderer.DescriptorPool, error) {
	s.createPoolCalls++
	if s.createPoolErr != nil {
		return nil, s.createPoolErr
	}
	s.lastPoolSizes = sizes
	s.lastMaxSets = maxSets
	return &stubPool{id: s.createPoolCalls}, nil
}

func (s *stubDriver) DestroyDescriptorPool(pool renderer.DescriptorPool) {
	s.destroyedPools = append(s.destroyedPools, pool)
}

func (s *stubDriver) ResetDescriptorPool(pool renderer.DescriptorPool) error {
	s.resetCalls++
	s.resetsByPool[pool.(*stubPool)]++
	if len(s.resetScript) > 0 {
		err := s.resetScript[0]
		s.resetScript = s.resetScript[1:]
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *stubDriver) AllocateDescriptorSet(pool renderer.DescriptorPool, layout renderer.DescriptorLayout) (renderer.DescriptorSet, error) {
	s.allocateCalls++
	if len(s.allocScript) > 0 {
		err := s.allocScript[0]
		s.allocScript = s.allocScript[1:]
		if err != nil {
			return nil, err
		}
	}
	return &stubSet{id: s.allocateCalls}, nil
}

func (s *stubDriver) UpdateDescriptorSet(set renderer.DescriptorSet, writes []metadata.DescriptorWrite) error {
	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	s.lastSet = set
	s.lastWrites = writes
	return nil
}
