// Package embedding defines the data exchanged with the external
// embedding trainer (skip-gram with negative sampling over walk.Generate's
// output). The core never trains embeddings; it only defines the shapes
// the trainer consumes and produces.
package embedding

import (
	"fmt"

	"github.com/sarchlab/zplace/netlist"
)

// Vectors maps each real block to its fixed-dimension embedding vector,
// as parsed by the caller from the trainer's word2vec-compatible textual
// output. All vectors must share one dimension.
type Vectors map[netlist.BlockId][]float32

// Dim returns the shared vector dimension, or 0 if vs is empty.
func (vs Vectors) Dim() int {
	for _, v := range vs {
		return len(v)
	}
	return 0
}

// Validate checks that every block in blocks has an embedding (it does
// not itself skip fixed or pseudo blocks; the caller passes only the
// free blocks) and that all vectors share one dimension,
// surfacing InvalidInput-shaped errors rather than panicking on a
// missing lookup deep inside the clusterer.
func (vs Vectors) Validate(blocks []netlist.BlockId) error {
	dim := vs.Dim()
	for _, b := range blocks {
		v, ok := vs[b]
		if !ok {
			return fmt.Errorf("embedding: no vector for block %s", b)
		}
		if len(v) != dim {
			return fmt.Errorf("embedding: block %s has dimension %d, want %d", b, len(v), dim)
		}
	}
	return nil
}
