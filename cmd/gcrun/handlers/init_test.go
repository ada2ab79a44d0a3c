package handlers

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gcrun.toml")
	require.NoError(t, Init(path))

	// A second init must not clobber the operator's edits.
	err := Init(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")
}

func TestInit_WriteError(t *testing.T) {
	saveAndRestoreFactories(t)
	writeTemplate = func(string) error { return errors.New("disk full") }

	err := Init("gcrun.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
