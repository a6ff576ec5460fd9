package graph

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dominikbraun/graph"
)

// ErrSongNotFound is returned when a query names a song that is not in the graph.
var ErrSongNotFound = errors.New("song not found in graph")

// Related is a neighbor of a song with every edge type linking the two.
type Related struct {
	Node  *Node      `json:"node"`
	Types []EdgeType `json:"types"`
	Via   []string   `json:"via"` // one entry per type, same order
}

// Searcher answers relationship queries over an in-memory song graph.
type Searcher interface {
	// Neighbors returns songs linked to songID by edges of type t (EdgeAll for
	// any), strongest first: more shared edge types, then graph order.
	Neighbors(songID string, t EdgeType) ([]Related, error)

	// Path returns the shortest chain of song ids from one song to another over
	// all edge types.
	Path(from, to string) ([]string, error)

	// EdgeCounts returns the number of edges per type.
	EdgeCounts() map[EdgeType]int

	// Load replaces the graph with data.
	Load(data *GraphData) error
}

type adjacency struct {
	neighbor string
	edge     Edge
}

type searcher struct {
	mu sync.RWMutex

	graph graph.Graph[string, *Node]
	order map[string]int          // song id -> position in GraphData.Nodes
	adj   map[string][]adjacency // song id -> incident edges
	edges []Edge
}

// NewSearcher creates a searcher over data.
func NewSearcher(data *GraphData) (Searcher, error) {
	s := &searcher{}
	if err := s.Load(data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *searcher) Load(data *GraphData) error {
	if data == nil {
		data = &GraphData{Nodes: []Node{}, Edges: []Edge{}}
	}

	g := graph.New(func(n *Node) string { return n.ID })
	order := make(map[string]int, len(data.Nodes))
	for i := range data.Nodes {
		node := &data.Nodes[i]
		if err := g.AddVertex(node); err != nil {
			return fmt.Errorf("failed to add node %s: %w", node.ID, err)
		}
		order[node.ID] = i
	}

	adj := make(map[string][]adjacency)
	for _, edge := range data.Edges {
		// parallel edges of another type already connect the pair for paths
		if err := g.AddEdge(edge.From, edge.To); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			continue
		}
		adj[edge.From] = append(adj[edge.From], adjacency{neighbor: edge.To, edge: edge})
		adj[edge.To] = append(adj[edge.To], adjacency{neighbor: edge.From, edge: edge})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = g
	s.order = order
	s.adj = adj
	s.edges = data.Edges
	return nil
}

func (s *searcher) Neighbors(songID string, t EdgeType) ([]Related, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.order[songID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrSongNotFound, songID)
	}

	byNeighbor := make(map[string]*Related)
	for _, a := range s.adj[songID] {
		if t != EdgeAll && a.edge.Type != t {
			continue
		}
		r, ok := byNeighbor[a.neighbor]
		if !ok {
			node, err := s.graph.Vertex(a.neighbor)
			if err != nil {
				continue
			}
			r = &Related{Node: node}
			byNeighbor[a.neighbor] = r
		}
		r.Types = append(r.Types, a.edge.Type)
		r.Via = append(r.Via, a.edge.Via)
	}

	results := make([]Related, 0, len(byNeighbor))
	for _, r := range byNeighbor {
		results = append(results, *r)
	}
	sort.Slice(results, func(i, j int) bool {
		if len(results[i].Types) != len(results[j].Types) {
			return len(results[i].Types) > len(results[j].Types)
		}
		return s.order[results[i].Node.ID] < s.order[results[j].Node.ID]
	})
	return results, nil
}

func (s *searcher) Path(from, to string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range []string{from, to} {
		if _, ok := s.order[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrSongNotFound, id)
		}
	}
	if from == to {
		return []string{from}, nil
	}

	path, err := graph.ShortestPath(s.graph, from, to)
	if err != nil {
		return nil, fmt.Errorf("no path from %s to %s: %w", from, to, err)
	}
	return path, nil
}

func (s *searcher) EdgeCounts() map[EdgeType]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[EdgeType]int, len(EdgeTypes))
	for _, t := range EdgeTypes {
		counts[t] = 0
	}
	for _, e := range s.edges {
		counts[e.Type]++
	}
	return counts
}
