package store

import (
	"testing"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenStoreForTest(t *testing.T) (*TokenStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	cfg := &config.Config{Storage: config.StorageConfig{Dir: "/state"}}
	return NewTokenStore(fs, cfg), fs
}

func TestTokenStoreRoundTrip(t *testing.T) {
	s, _ := newTokenStoreForTest(t)

	require.NoError(t, s.Save("access-1", "refresh-1"))
	assert.Equal(t, "access-1", s.Access())
	assert.Equal(t, "refresh-1", s.Refresh())

	// Saving again replaces the pair as a unit.
	require.NoError(t, s.Save("access-2", "refresh-2"))
	assert.Equal(t, "access-2", s.Access())
	assert.Equal(t, "refresh-2", s.Refresh())
}

func TestTokenStoreEmpty(t *testing.T) {
	s, _ := newTokenStoreForTest(t)

	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())
}

func TestTokenStoreClear(t *testing.T) {
	s, _ := newTokenStoreForTest(t)

	// Clearing an empty store is not an error.
	require.NoError(t, s.Clear())

	require.NoError(t, s.Save("access-1", "refresh-1"))
	require.NoError(t, s.Clear())
	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())

	require.NoError(t, s.Clear())
}

func TestTokenStoreCorruptFile(t *testing.T) {
	s, fs := newTokenStoreForTest(t)

	require.NoError(t, afero.WriteFile(fs, "/state/tokens.json", []byte("not json"), 0o600))
	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())
}

func TestTokenStoreOpaqueContents(t *testing.T) {
	s, _ := newTokenStoreForTest(t)

	// Tokens are opaque strings and are stored verbatim, shape unseen.
	require.NoError(t, s.Save("!!not-a-jwt??", "  spaces kept  "))
	assert.Equal(t, "!!not-a-jwt??", s.Access())
	assert.Equal(t, "  spaces kept  ", s.Refresh())
}
