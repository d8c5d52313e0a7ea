package wardrobe

import "sync"

// Cache is the local ordered mirror of the user's wardrobe.
// It only holds server-confirmed items; filter results never enter it.
type Cache struct {
	mu    sync.RWMutex
	items []Item
}

// NewCache constructs an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// ReplaceAll resynchronizes the cache with a full server listing.
// Duplicate ids keep the first position and the last value.
func (c *Cache) ReplaceAll(items []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]Item, 0, len(items))
	for _, item := range items {
		c.upsertLocked(item)
	}
}

// Upsert overwrites the item with the same id in place, or appends it.
func (c *Cache) Upsert(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upsertLocked(item)
}

func (c *Cache) upsertLocked(item Item) {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove deletes the item with id. Unknown ids are ignored.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Get returns the cached item with id.
func (c *Cache) Get(id string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Items returns a copy of the cached items in order.
func (c *Cache) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
