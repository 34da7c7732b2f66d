package model

// Node is an entry of a Container: a *Container, a *Table or an *Attribute.
type Node interface {
	node()
}

// Attribute is a scalar or small array attached to a group.
type Attribute struct {
	Values []float64
	Text   []string
}

// Scalar returns the first numeric value of the attribute.
func (a *Attribute) Scalar() (float64, bool) {
	if len(a.Values) == 0 {
		return 0, false
	}

	return a.Values[0], true
}

// Container is the parsed tree of a hierarchical file.
type Container struct {
	entries map[string]Node
	order   []string
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{entries: make(map[string]Node)}
}

func (*Container) node() {}
func (*Table) node()     {}
func (*Attribute) node() {}

// Set stores a node under name, replacing any previous entry with the same name.
func (c *Container) Set(name string, n Node) {
	if _, ok := c.entries[name]; !ok {
		c.order = append(c.order, name)
	}
	c.entries[name] = n
}

// Get returns the node stored under name.
func (c *Container) Get(name string) (Node, bool) {
	n, ok := c.entries[name]

	return n, ok
}

// Group returns the nested container stored under name.
func (c *Container) Group(name string) (*Container, bool) {
	n, ok := c.entries[name].(*Container)

	return n, ok
}

// Table returns the table stored under name.
func (c *Container) Table(name string) (*Table, bool) {
	n, ok := c.entries[name].(*Table)

	return n, ok
}

// Attr returns the attribute stored under name.
func (c *Container) Attr(name string) (*Attribute, bool) {
	n, ok := c.entries[name].(*Attribute)

	return n, ok
}

// Names returns entry names in insertion order.
func (c *Container) Names() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of entries.
func (c *Container) Len() int {
	return len(c.order)
}

// ShallowCopy returns a new container holding the same nodes.
func (c *Container) ShallowCopy() *Container {
	out := NewContainer()
	for _, name := range c.order {
		out.Set(name, c.entries[name])
	}

	return out
}
