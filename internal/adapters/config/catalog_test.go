package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildsrc/internal/adapters/config"
	"go.trai.ch/buildsrc/internal/core/domain"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.CatalogFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCatalogLoader_Load(t *testing.T) {
	path := writeCatalog(t, `
kotlinVersion = "1.1.50"

[versions]
junit = "4.12"
"kotlinx-html" = "0.6.3"
`)

	c, err := config.NewCatalogLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"kotlinVersion", "versions.junit", "versions.kotlinx-html"}, c.Keys())

	v, err := c.Version("kotlinx-html")
	require.NoError(t, err)
	assert.Equal(t, "0.6.3", v)
}

func TestCatalogLoader_NonStringValue(t *testing.T) {
	path := writeCatalog(t, `
[versions]
junit = 4.12
`)

	_, err := config.NewCatalogLoader().Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidCatalogValue)
}

func TestCatalogLoader_Missing(t *testing.T) {
	_, err := config.NewCatalogLoader().Load(filepath.Join(t.TempDir(), "none.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestCatalogLoader_Malformed(t *testing.T) {
	path := writeCatalog(t, "{{{invalid toml")

	_, err := config.NewCatalogLoader().Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}
