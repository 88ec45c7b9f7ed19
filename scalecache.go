package demstats

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"seehuhn.de/go/geom/vec"
)

// A ScaleCache memoizes sea level local scale factors by latitude. Scale
// factors do not depend on longitude, so every pixel in a raster row shares
// the same value.
type ScaleCache struct {
	ellipsoid Ellipsoid
	cache     *lru.Cache[float64, vec.Vec2]
}

// NewScaleCache returns a new ScaleCache for ellipsoid holding up to size
// latitudes.
func NewScaleCache(ellipsoid Ellipsoid, size int) (*ScaleCache, error) {
	cache, err := lru.New[float64, vec.Vec2](size)
	if err != nil {
		return nil, err
	}
	return &ScaleCache{
		ellipsoid: ellipsoid,
		cache:     cache,
	}, nil
}

// LocalScaleFactors returns the sea level local scale factors at latitude phi.
func (c *ScaleCache) LocalScaleFactors(phi float64) vec.Vec2 {
	if scale, ok := c.cache.Get(phi); ok {
		scaleCacheHits.Inc()
		return scale
	}
	scaleCacheMisses.Inc()
	scale := c.ellipsoid.LocalScaleFactors(0, phi, 0)
	c.cache.Add(phi, scale)
	return scale
}
