package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound is returned when no item has the requested id.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateID is returned when two items share an id.
	ErrDuplicateID = errors.New("duplicate item id")
)

// Catalog is the read-only item collection. It is safe for concurrent use
// because nothing mutates it after New returns.
type Catalog struct {
	items []Item
	byID  map[int]int
}

// New builds a catalog from items, preserving their order. The slice is
// copied, so later changes by the caller are not observed.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, len(items)),
		byID:  make(map[int]int, len(items)),
	}
	copy(c.items, items)

	for i := range c.items {
		c.items[i].normalize()
		id := c.items[i].ID
		if _, exists := c.byID[id]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, id)
		}
		c.byID[id] = i
	}
	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get returns the item with the given id or ErrItemNotFound.
func (c *Catalog) Get(id int) (*Item, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	return &c.items[i], nil
}

// All returns references to every item in catalog order. The returned slice
// is new on each call; the items it points to must not be modified.
func (c *Catalog) All() []*Item {
	out := make([]*Item, len(c.items))
	for i := range c.items {
		out[i] = &c.items[i]
	}
	return out
}
