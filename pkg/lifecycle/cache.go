package lifecycle

import "github.com/gnames/tebreak/pkg/nullmodel"

// MatrixCache keeps null-distribution matrices between runs. Keys identify
// the exact sampling setup, so a stored matrix can replace sampling.
type MatrixCache interface {
	// Open makes the cache ready for Get and Put.
	Open() error

	// Close releases the cache.
	Close() error

	// Get returns a stored matrix, or nil if the key is unknown.
	Get(key string) (*nullmodel.Matrix, error)

	// Put stores a matrix under the key, replacing an older value.
	Put(key string, m *nullmodel.Matrix) error

	// Clean removes every stored matrix.
	Clean() error
}
