package mocks

import "fmt"

// IDSource is a deterministic id source for tests
type IDSource struct {
	Prefix string
	next   int
}

// NewIDSource creates a mock id source yielding prefix-0, prefix-1, ...
func NewIDSource(prefix string) *IDSource {
	return &IDSource{Prefix: prefix}
}

// NewID returns the next deterministic id
func (s *IDSource) NewID() string {
	id := fmt.Sprintf("%s-%d", s.Prefix, s.next)
	s.next++
	return id
}
