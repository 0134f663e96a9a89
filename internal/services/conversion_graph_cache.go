package services

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// GraphCache keeps built graphs per canonical name. Writes that touch a
// canonical name's units or conversions run inside Exclusive and call
// Invalidate before it returns; conversions read the store inside Shared, so
// no conversion sees a committed write while the old graph is still cached.
// Both must be entered before the store transaction is opened.
type GraphCache interface {
	Exclusive(write func() error) error
	Shared(read func() error) error
	// Generation returns a token to pass to Store for graphs built afterwards.
	Generation(canonicalID uint) uint64
	Get(canonicalID uint) (Graph, bool)
	// Store keeps graph only if no invalidation happened since generation was read.
	Store(canonicalID uint, generation uint64, graph Graph)
	Invalidate(canonicalID uint)
}

type LRUGraphCache struct {
	access      sync.RWMutex
	mu          sync.Mutex
	graphs      *lru.Cache[uint, Graph]
	generations map[uint]uint64
}

func NewLRUGraphCache(size int) (*LRUGraphCache, error) {
	graphs, err := lru.New[uint, Graph](size)
	if err != nil {
		return nil, err
	}
	return &LRUGraphCache{graphs: graphs, generations: map[uint]uint64{}}, nil
}

func (cache *LRUGraphCache) Exclusive(write func() error) error {
	cache.access.Lock()
	defer cache.access.Unlock()
	return write()
}

// Shared must not be nested: a waiting Exclusive blocks new readers.
func (cache *LRUGraphCache) Shared(read func() error) error {
	cache.access.RLock()
	defer cache.access.RUnlock()
	return read()
}

func (cache *LRUGraphCache) Generation(canonicalID uint) uint64 {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.generations[canonicalID]
}

func (cache *LRUGraphCache) Get(canonicalID uint) (Graph, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.graphs.Get(canonicalID)
}

func (cache *LRUGraphCache) Store(canonicalID uint, generation uint64, graph Graph) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.generations[canonicalID] != generation {
		return
	}
	cache.graphs.Add(canonicalID, graph)
}

func (cache *LRUGraphCache) Invalidate(canonicalID uint) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.generations[canonicalID]++
	cache.graphs.Remove(canonicalID)
}

func (cache *LRUGraphCache) Len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.graphs.Len()
}

// noGraphCache rebuilds the graph on every request.
type noGraphCache struct{}

func (noGraphCache) Exclusive(write func() error) error { return write() }
func (noGraphCache) Shared(read func() error) error { return read() }

func (noGraphCache) Generation(uint) uint64 { return 0 }
func (noGraphCache) Get(uint) (Graph, bool) { return nil, false }
func (noGraphCache) Store(uint, uint64, Graph) {}
func (noGraphCache) Invalidate(uint) {}
