package model

import (
	"sync"

	"github.com/pkg/errors"
)

// BufferPool recycles age buffers across re-initialisations
type BufferPool struct {
	pool  sync.Pool
	alloc func(size int) ([]uint8, error)
}

func NewBufferPool() *BufferPool {
	return &BufferPool{alloc: allocate[uint8]}
}

// Get returns a zeroed buffer of exactly size cells, reusing a pooled one
// when its capacity allows
func (p *BufferPool) Get(size int) ([]uint8, error) {
	if v, ok := p.pool.Get().(*[]uint8); ok {
		if buf := *v; cap(buf) >= size {
			buf = buf[:size]
			clear(buf)
			return buf, nil
		}
		// Too small for this request, let the GC have it.
	}
	buf, err := p.alloc(size)
	if err != nil {
		return nil, errors.Wrapf(err, "[BufferPool.Get] %d cells", size)
	}
	return buf, nil
}

// Put returns a buffer to the pool for reuse
func (p *BufferPool) Put(buf []uint8) {
	if buf == nil {
		return
	}
	p.pool.Put(&buf)
}

// allocate converts a failed make into ErrAllocationFailure
func allocate[T any](n int) (buf []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.Wrapf(ErrAllocationFailure, "[allocate] %d elements: %v", n, r)
		}
	}()
	return make([]T, n), nil
}
