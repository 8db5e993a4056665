package domain

// Step is a single hop: the work shared with the previous person and the person reached.
// The adjacency resolver emits the same pair shape for one-hop neighbours.
type Step struct {
	WorkID   string
	PersonID string
}

// Path is the ordered list of hops from the source's first neighbour to the target.
// An empty path connects a person to themself.
type Path []Step

// Degrees returns the degrees of separation represented by the path.
func (p Path) Degrees() int {
	return len(p)
}

// Link is a hydrated hop used for presentation.
type Link struct {
	From Person
	To   Person
	Work Work
}

// Connection describes the answer to a degrees query in presentation-ready form.
type Connection struct {
	Source    Person
	Target    Person
	Connected bool
	Links     []Link
}

// Degrees returns the number of links, or -1 when the people are not connected.
func (c Connection) Degrees() int {
	if !c.Connected {
		return -1
	}
	return len(c.Links)
}
