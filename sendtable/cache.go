package sendtable

import (
	"hash/fnv"

	lru "github.com/hashicorp/golang-lru"
)

// Schema bundles the parsed tables and server classes produced by one
// DATA_TABLES block — the unit the EntityType cache memoizes.
type Schema struct {
	Tables  []*SendTable
	Classes []*ServerClass
}

// Cache memoizes fully materialized Schemas by a hash of their
// DATA_TABLES block's raw bytes, so repeat opens of demos sharing an
// identical schema (the common case across matches on one game build)
// skip re-parsing and re-materializing every EntityType from scratch.
type Cache struct {
	lru *lru.Cache
}

// NewCache creates a Cache holding up to size schemas.
func NewCache(size int) (*Cache, error) {
	l, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// HashBlock computes the cache key for a raw DATA_TABLES block.
func HashBlock(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}

// Get returns the cached Schema for key, if present.
func (c *Cache) Get(key uint64) (*Schema, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*Schema), true
}

// Put stores schema under key, evicting the least recently used entry
// if the cache is already full.
func (c *Cache) Put(key uint64, schema *Schema) {
	c.lru.Add(key, schema)
}
