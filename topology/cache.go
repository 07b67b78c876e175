package topology

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/route"
)

// DefaultCacheSize is the number of base graphs kept by NewCache(0).
const DefaultCacheSize = 16

// ErrNilBase is returned by Cache.Put for a nil or graphless Base.
var ErrNilBase = errors.New("topology: nil base graph")

// Cache keeps recently built bases keyed by fingerprint. Concurrent Get
// calls for the same roster share one Build.
type Cache struct {
	bases *lru.Cache[string, *Base]
	group singleflight.Group
}

// NewCache returns a Cache holding up to size bases (DefaultCacheSize when
// size <= 0).
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	bases, err := lru.New[string, *Base](size)
	if err != nil {
		return nil, err
	}
	return &Cache{bases: bases}, nil
}

// Get returns the base for raceways and opts, building it on a miss.
// hit reports whether the base came from the cache.
func (c *Cache) Get(raceways []capacity.Raceway, opts route.Options) (base *Base, hit bool, err error) {
	key := Fingerprint(raceways, opts)
	if b, ok := c.bases.Get(key); ok {
		return b, true, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if b, ok := c.bases.Get(key); ok {
			return b, nil
		}
		b, err := Build(raceways, opts)
		if err != nil {
			return nil, err
		}
		c.bases.Add(key, b)
		return b, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Base), false, nil
}

// Put stores a base built elsewhere, e.g. one returned by a worker.
func (c *Cache) Put(b *Base) error {
	if b == nil || b.Graph == nil {
		return ErrNilBase
	}
	c.bases.Add(b.Fingerprint, b)
	return nil
}

// Len reports the number of cached bases.
func (c *Cache) Len() int { return c.bases.Len() }
