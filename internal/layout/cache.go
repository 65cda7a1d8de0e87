package layout

type cacheEntry struct {
	Layout TypeLayout
	Err    *LayoutError
}

type cache struct {
	byName map[string]*cacheEntry
}

func newCache() *cache {
	return &cache{byName: make(map[string]*cacheEntry, 64)}
}

func (c *cache) get(key string) (*cacheEntry, bool) {
	if c == nil {
		return nil, false
	}
	e, ok := c.byName[key]
	return e, ok
}

func (c *cache) put(key string, e *cacheEntry) {
	if c == nil {
		return
	}
	if e == nil {
		delete(c.byName, key)
		return
	}
	c.byName[key] = e
}
