package statesync

import "sync"

// Collection is an id-keyed, insertion-ordered set of records. Upsert is
// idempotent: a realtime event replayed for a known id updates the stored
// record in place and never appends a duplicate.
type Collection struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]interface{}
}

func NewCollection() *Collection {
	return &Collection{byID: make(map[string]interface{})}
}

// Upsert inserts or replaces the record for id. Returns true when the id was
// new, false when an existing record was updated in place.
func (c *Collection) Upsert(id string, value interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; ok {
		c.byID[id] = value
		return false
	}
	c.byID[id] = value
	c.order = append(c.order, id)
	return true
}

// ReplaceID moves a record from a temporary id to its real id, keeping its
// position. Used when a confirmation resolves an optimistic insert. If the
// real id is already present (the realtime event won the race), the
// temporary record is simply dropped.
func (c *Collection) ReplaceID(tempID, realID string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, id := range c.order {
		if id == tempID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	delete(c.byID, tempID)

	if _, exists := c.byID[realID]; exists {
		c.order = append(c.order[:idx], c.order[idx+1:]...)
		c.byID[realID] = value
		return
	}

	c.order[idx] = realID
	c.byID[realID] = value
}

// Remove deletes the record for id if present.
func (c *Collection) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Has reports whether id is present.
func (c *Collection) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

// Get returns the record for id.
func (c *Collection) Get(id string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.byID[id]
	return v, ok
}

// Values returns all records in insertion order.
func (c *Collection) Values() []interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]interface{}, len(c.order))
	for i, id := range c.order {
		out[i] = c.byID[id]
	}
	return out
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
