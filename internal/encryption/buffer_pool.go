package encryption

import (
	"sync"
)

const chunkSize = 32 * 1024 // 32KB per stream

// chunk holds the three working buffers of a transform step.
type chunk struct {
	in  []byte
	key []byte
	out []byte
}

// chunkPool provides reusable transform buffers.
//
//nolint:gochecknoglobals
var chunkPool = sync.Pool{
	New: func() any {
		return &chunk{
			in:  make([]byte, chunkSize),
			key: make([]byte, chunkSize),
			out: make([]byte, chunkSize),
		}
	},
}

func getChunk() *chunk {
	c, ok := chunkPool.Get().(*chunk)
	if !ok {
		return chunkPool.New().(*chunk) //nolint:forcetypeassert
	}

	return c
}

// putChunk clears key material before returning the buffers to the pool.
func putChunk(c *chunk) {
	clear(c.key)
	clear(c.in)
	clear(c.out)
	chunkPool.Put(c)
}
