package matmul

import (
	"log/slog"
	"sync"

	"github.com/cwbudde/algo-wavelet/dsp/sparse"
)

// cacheKey identifies the operator of one level. cols is 0 for 1D
// transforms.
type cacheKey struct {
	rows, cols int
	level      int
}

// matrixCache memoises per-level operators of one transform instance.
type matrixCache struct {
	kind   string
	logger *slog.Logger

	mu       sync.Mutex
	matrices map[cacheKey]*sparse.Matrix
}

func newMatrixCache(kind string, logger *slog.Logger) *matrixCache {
	return &matrixCache{
		kind:     kind,
		logger:   logger,
		matrices: make(map[cacheKey]*sparse.Matrix),
	}
}

// get returns the cached operator for key, building it on first use. Builds
// run under the lock, so concurrent callers never build the same operator
// twice.
func (c *matrixCache) get(key cacheKey, build func() (*sparse.Matrix, error)) (*sparse.Matrix, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.matrices[key]; ok {
		c.logger.Debug("matrix cache hit", "kind", c.kind, "rows", key.rows, "cols", key.cols, "level", key.level)
		return m, nil
	}

	m, err := build()
	if err != nil {
		return nil, err
	}
	c.logger.Debug("built matrix", "kind", c.kind, "rows", key.rows, "cols", key.cols, "level", key.level, "nnz", m.NNZ())
	c.matrices[key] = m
	return m, nil
}

func (c *matrixCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.matrices)
}
