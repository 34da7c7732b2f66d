// Package store provides the graph.Store behind the derived-field dependency graph.
//
// Vertices are kept in insertion order so the graph lists fields the way the registry
// declares them, and vertex properties can be edited after the graph is built.
package store

import (
	"fmt"
	"sync"

	"github.com/dominikbraun/graph"
)

// CustomStore is a graph.Store with in-place vertex updates.
type CustomStore[K comparable, T any] interface {
	graph.Store[K, T]
	UpdateVertex(k K, options ...func(*graph.VertexProperties)) error
}

var _ CustomStore[string, string] = (*OrderedStore[string, string])(nil)

type vertex[T any] struct {
	value T
	props graph.VertexProperties
}

type edgeKey[K comparable] struct {
	source, target K
}

// OrderedStore keeps vertices in insertion order and edges keyed by their end points.
type OrderedStore[K comparable, T any] struct {
	mu       sync.RWMutex
	order    []K
	vertices map[K]*vertex[T]
	edges    map[edgeKey[K]]graph.Edge[K]
	// degree counts the edges touching a vertex, in either direction.
	degree map[K]int
}

// NewOrderedStore creates an empty store.
func NewOrderedStore[K comparable, T any]() *OrderedStore[K, T] {
	return &OrderedStore[K, T]{
		vertices: make(map[K]*vertex[T]),
		edges:    make(map[edgeKey[K]]graph.Edge[K]),
		degree:   make(map[K]int),
	}
}

func (s *OrderedStore[K, T]) AddVertex(k K, t T, p graph.VertexProperties) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vertices[k]; ok {
		return graph.ErrVertexAlreadyExists
	}

	if p.Attributes == nil {
		p.Attributes = make(map[string]string)
	}

	s.vertices[k] = &vertex[T]{value: t, props: p}
	s.order = append(s.order, k)

	return nil
}

// ListVertices returns the vertices in insertion order.
func (s *OrderedStore[K, T]) ListVertices() ([]K, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]K(nil), s.order...), nil
}

func (s *OrderedStore[K, T]) VertexCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order), nil
}

func (s *OrderedStore[K, T]) Vertex(k K) (T, graph.VertexProperties, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vertices[k]
	if !ok {
		var zero T

		return zero, graph.VertexProperties{}, graph.ErrVertexNotFound
	}

	return v.value, v.props, nil
}

func (s *OrderedStore[K, T]) RemoveVertex(k K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vertices[k]; !ok {
		return graph.ErrVertexNotFound
	}

	if s.degree[k] > 0 {
		return graph.ErrVertexHasEdges
	}

	delete(s.vertices, k)
	delete(s.degree, k)
	for i, o := range s.order {
		if o == k {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}

	return nil
}

// UpdateVertex applies options to the stored properties of k.
func (s *OrderedStore[K, T]) UpdateVertex(k K, options ...func(*graph.VertexProperties)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vertices[k]
	if !ok {
		return graph.ErrVertexNotFound
	}

	for _, opt := range options {
		opt(&v.props)
	}

	return nil
}

func (s *OrderedStore[K, T]) AddEdge(source, target K, edge graph.Edge[K]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey[K]{source, target}
	if _, ok := s.edges[key]; !ok {
		s.degree[source]++
		s.degree[target]++
	}
	s.edges[key] = edge

	return nil
}

func (s *OrderedStore[K, T]) UpdateEdge(source, target K, edge graph.Edge[K]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey[K]{source, target}
	if _, ok := s.edges[key]; !ok {
		return graph.ErrEdgeNotFound
	}
	s.edges[key] = edge

	return nil
}

func (s *OrderedStore[K, T]) RemoveEdge(source, target K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey[K]{source, target}
	if _, ok := s.edges[key]; ok {
		delete(s.edges, key)
		s.degree[source]--
		s.degree[target]--
	}

	return nil
}

func (s *OrderedStore[K, T]) Edge(source, target K) (graph.Edge[K], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edge, ok := s.edges[edgeKey[K]{source, target}]
	if !ok {
		return graph.Edge[K]{}, graph.ErrEdgeNotFound
	}

	return edge, nil
}

func (s *OrderedStore[K, T]) ListEdges() ([]graph.Edge[K], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]graph.Edge[K], 0, len(s.edges))
	for _, edge := range s.edges {
		res = append(res, edge)
	}

	return res, nil
}

// CreatesCycle reports whether target already reaches source, so that an edge
// source -> target would close a cycle.
func (s *OrderedStore[K, T]) CreatesCycle(source, target K) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, k := range []K{source, target} {
		if _, ok := s.vertices[k]; !ok {
			return false, fmt.Errorf("could not get vertex with hash %v: %w", k, graph.ErrVertexNotFound)
		}
	}

	if source == target {
		return true, nil
	}

	next := make(map[K][]K)
	for key := range s.edges {
		next[key.source] = append(next[key.source], key.target)
	}

	visited := map[K]struct{}{target: {}}
	queue := []K{target}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == source {
			return true, nil
		}

		for _, n := range next[current] {
			if _, ok := visited[n]; !ok {
				visited[n] = struct{}{}
				queue = append(queue, n)
			}
		}
	}

	return false, nil
}
