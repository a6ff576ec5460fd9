package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// StaticFetcher serves a fixed payload.
type StaticFetcher []byte

func (f StaticFetcher) Fetch(ctx context.Context) ([]byte, error) {
	return f, nil
}

// NewTestLoader creates a Loader over payload and loads it once.
// Cleanup is registered with t.Cleanup().
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    loader := source.NewTestLoader(t, `{"songs": [...]}`)
//	    ds := loader.Current()
//	}
func NewTestLoader(t testing.TB, payload string) Loader {
	t.Helper()

	l := NewLoader(StaticFetcher(payload))
	t.Cleanup(func() { l.Close() })

	_, err := l.Load(context.Background(), false)
	require.NoError(t, err)
	return l
}
