package catalogtesting

import (
	"bytes"
	_ "embed"
	"testing"

	"github.com/MichalMitros/google-feed-generator/internal/catalog"
	"github.com/stretchr/testify/require"
)

// StoreID is ID of the store exported in store.json.
const StoreID = 1

//go:embed store.json
var storeJSON []byte

// StoreJSON returns raw catalog export of the demo store.
func StoreJSON() []byte {
	return bytes.Clone(storeJSON)
}

// Snapshot returns decoded catalog export of the demo store.
func Snapshot(t *testing.T, ops ...func(s *catalog.Snapshot)) catalog.Snapshot {
	t.Helper()

	snapshot, err := catalog.DecodeSnapshot(bytes.NewReader(storeJSON))
	require.NoError(t, err, "should decode demo store export")

	for _, op := range ops {
		op(&snapshot)
	}

	return snapshot
}

// Catalog returns Catalog of the demo store.
func Catalog(t *testing.T, ops ...func(s *catalog.Snapshot)) *catalog.Catalog {
	t.Helper()

	return catalog.New(Snapshot(t, ops...))
}
