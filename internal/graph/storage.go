package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// GraphFileName is the name of the graph snapshot file
	GraphFileName = "song-graph.json"
	// GraphVersion is the current version of the graph format
	GraphVersion = "1.1"
)

// Fingerprint identifies the payload a graph was built from.
func Fingerprint(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Storage persists song graph snapshots.
type Storage interface {
	// Load returns the stored snapshot, or nil if none has been saved.
	Load() (*GraphData, error)

	// LoadMatching returns the stored snapshot only when it was built from
	// the payload with the given fingerprint and the current format version.
	LoadMatching(fingerprint string) (*GraphData, error)

	// Save writes the snapshot atomically, stamping its metadata.
	Save(data *GraphData, fingerprint string) error

	// Exists reports whether a snapshot file exists.
	Exists() bool
}

type storage struct {
	dir string
	now func() time.Time
}

// NewStorage creates graph storage in dir, creating it if needed.
func NewStorage(dir string) (Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create graph directory: %w", err)
	}
	return &storage{dir: dir, now: time.Now}, nil
}

func (s *storage) path() string {
	return filepath.Join(s.dir, GraphFileName)
}

func (s *storage) Load() (*GraphData, error) {
	f, err := os.Open(s.path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}
	defer f.Close()

	var data GraphData
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse graph JSON: %w", err)
	}
	return &data, nil
}

func (s *storage) LoadMatching(fingerprint string) (*GraphData, error) {
	data, err := s.Load()
	if err != nil || data == nil {
		return nil, err
	}
	if data.Metadata.Version != GraphVersion || data.Metadata.Fingerprint != fingerprint {
		return nil, nil
	}
	return data, nil
}

// Save writes to a temp file in the same directory and renames it over the
// snapshot, so readers never observe a partial file.
func (s *storage) Save(data *GraphData, fingerprint string) error {
	data.Metadata = GraphMetadata{
		Version:     GraphVersion,
		Fingerprint: fingerprint,
		GeneratedAt: s.now().UTC(),
		NodeCount:   len(data.Nodes),
		EdgeCount:   len(data.Edges),
	}

	tmp, err := os.CreateTemp(s.dir, GraphFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp graph file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write graph data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write graph data: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		return fmt.Errorf("failed to rename temp graph file: %w", err)
	}
	return nil
}

func (s *storage) Exists() bool {
	_, err := os.Stat(s.path())
	return err == nil
}
