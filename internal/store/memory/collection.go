package memory

// collection is an ordered slice of records keyed by id. It is not safe for
// concurrent use; Store guards it.
type collection[T any] struct {
	items []T
	maxID int64
	id    func(T) int64
}

func newCollection[T any](seed []T, id func(T) int64) collection[T] {
	c := collection[T]{items: append([]T(nil), seed...), id: id}
	for _, v := range seed {
		if n := id(v); n > c.maxID {
			c.maxID = n
		}
	}
	return c
}

// next reserves the following id.
func (c *collection[T]) next() int64 {
	c.maxID++
	return c.maxID
}

func (c *collection[T]) list() []T {
	return append([]T{}, c.items...)
}

func (c *collection[T]) filter(keep func(T) bool) []T {
	out := []T{}
	for _, v := range c.items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (c *collection[T]) index(id int64) int {
	for i, v := range c.items {
		if c.id(v) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(id int64) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) add(v T) {
	if n := c.id(v); n > c.maxID {
		c.maxID = n
	}
	c.items = append(c.items, v)
}

func (c *collection[T]) replace(v T) {
	if i := c.index(c.id(v)); i >= 0 {
		c.items[i] = v
	}
}

func (c *collection[T]) remove(id int64) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return true
}
