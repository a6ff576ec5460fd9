package graph

import "time"

// Node is a song in the relationship graph.
type Node struct {
	ID       string `json:"id"`    // song id
	Title    string `json:"title"` // song title
	Year     int    `json:"year,omitempty"`
	Key      string `json:"key,omitempty"`
	Category string `json:"category,omitempty"`
}

// EdgeType is the reason two songs are related.
type EdgeType string

const (
	EdgeCollaborator EdgeType = "collaborator" // share a credited person
	EdgeKey          EdgeType = "key"          // same musical key
	EdgeCategory     EdgeType = "category"     // same lyric category

	// EdgeAll matches every edge type in queries. It never appears on an edge.
	EdgeAll EdgeType = "all"
)

// EdgeTypes lists the concrete edge types in display order.
var EdgeTypes = []EdgeType{EdgeCollaborator, EdgeKey, EdgeCategory}

// ParseEdgeType returns the edge type named s, or EdgeAll when s is empty or
// unknown.
func ParseEdgeType(s string) EdgeType {
	for _, t := range EdgeTypes {
		if string(t) == s {
			return t
		}
	}
	return EdgeAll
}

// Edge is an undirected relationship between two songs. From sorts before To.
type Edge struct {
	From string   `json:"from"` // song id
	To   string   `json:"to"`   // song id
	Type EdgeType `json:"type"`
	Via  string   `json:"via"` // person id, key or category name that links the pair
}

// GraphData is the complete song graph as stored in JSON.
type GraphData struct {
	Metadata GraphMetadata `json:"_metadata"`
	Nodes    []Node        `json:"nodes"`
	Edges    []Edge        `json:"edges"`
}

// GraphMetadata contains metadata about the graph.
type GraphMetadata struct {
	Version     string    `json:"version"`
	Fingerprint string    `json:"fingerprint"` // sha256 of the source payload
	GeneratedAt time.Time `json:"generated_at"`
	NodeCount   int       `json:"node_count"`
	EdgeCount   int       `json:"edge_count"`
}
