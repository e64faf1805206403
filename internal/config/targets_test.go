package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTargets_Defaults(t *testing.T) {
	targets, err := LoadTargets("")
	require.NoError(t, err)
	require.Len(t, targets, 6)
	assert.Equal(t, "university-hyderabad", targets[0].Slug)
	for _, target := range targets {
		assert.NotEmpty(t, target.Slug)
		assert.Contains(t, target.WikiURL, "en.wikipedia.org/wiki/")
	}
}

func TestLoadTargets_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	raw := `targets:
  - slug: osmania-university
    wiki_url: https://en.wikipedia.org/wiki/Osmania_University
  - slug: university-madras
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	targets, err := LoadTargets(path)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "osmania-university", targets[0].Slug)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Osmania_University", targets[0].WikiURL)
	assert.Empty(t, targets[1].WikiURL)
}

func TestLoadTargets_MissingFile(t *testing.T) {
	_, err := LoadTargets(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadTargets_EmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets: []\n"), 0o644))

	_, err := LoadTargets(path)
	assert.Error(t, err)
}

func TestLoadTargets_MissingSlug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	raw := `targets:
  - wiki_url: https://en.wikipedia.org/wiki/Osmania_University
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := LoadTargets(path)
	assert.Error(t, err)
}
