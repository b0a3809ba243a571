package model

import "sync"

// bufferFromPool takes a cleared scratch buffer from the pool, or allocates one without it
func bufferFromPool(pool *BufferPool, columns, rows int) [][]bool {
	if pool == nil {
		return newCells(columns, rows)
	}

	return pool.Get(columns, rows)
}

// bufferToPool returns a buffer to the pool for reuse
func bufferToPool(cells [][]bool, pool *BufferPool) {
	if pool == nil {
		return
	}

	pool.Put(cells)
}

type buffer struct {
	cells [][]bool
}

// reset reshapes the buffer to columns x rows, all dead
func (b *buffer) reset(columns, rows int) {
	if len(b.cells) != columns {
		b.cells = make([][]bool, columns)
	}
	for x := range b.cells {
		if len(b.cells[x]) != rows {
			b.cells[x] = make([]bool, rows)
		} else {
			clear(b.cells[x])
		}
	}
}

// BufferPool recycles generation scratch buffers between ticks
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &buffer{}
			},
		},
	}
}

// Get retrieves a buffer from the pool with the given dimensions and every cell dead
func (p *BufferPool) Get(columns, rows int) [][]bool {
	b := p.pool.Get().(*buffer)
	b.reset(columns, rows)
	return b.cells
}

// Put returns a buffer to the pool. The caller must not use it afterwards.
func (p *BufferPool) Put(cells [][]bool) {
	p.pool.Put(&buffer{cells: cells})
}
