package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestComputeFileHash(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.css")
	require.NoError(t, os.WriteFile(tmpFile, []byte("body { color: red; }"), 0644))

	assert.Len(t, computeFileHash(tmpFile), 8)
	assert.Empty(t, computeFileHash("non_existent_file.css"))
}

func TestInitAssetVersions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "style.css"), []byte("main { margin: 0 }"), 0644))

	InitAssetVersions(dir, zap.NewNop())
	ctx := context.Background()

	assert.Len(t, GetAssetVersion(ctx, "css/style.css"), 8)
	assert.Equal(t, "1", GetAssetVersion(ctx, "js/app.js"))
	assert.Equal(t, "1", GetAssetVersion(ctx, "js/unknown.js"))
}
