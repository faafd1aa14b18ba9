package services

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"casa_portal_go/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalArchive(t *testing.T) {
	dir := t.TempDir()
	archive := NewLocalArchive(dir)
	ctx := context.Background()
	key := "exports/4/audit.csv"

	t.Run("Put writes the export", func(t *testing.T) {
		result, err := archive.Put(ctx, key, ContentTypeCSV, []byte("id,action\n1,create\n"))
		require.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, "audit.csv", result.FileName)
		assert.Equal(t, int64(19), result.Size)

		data, err := os.ReadFile(filepath.Join(dir, "exports", "4", "audit.csv"))
		require.NoError(t, err)
		assert.Equal(t, "id,action\n1,create\n", string(data))

		leftovers, _ := filepath.Glob(filepath.Join(dir, "exports", "4", ".export-*"))
		assert.Empty(t, leftovers)
	})

	t.Run("Put overwrites", func(t *testing.T) {
		_, err := archive.Put(ctx, key, ContentTypeCSV, []byte("v2"))
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "exports", "4", "audit.csv"))
		require.NoError(t, err)
		assert.Equal(t, "v2", string(data))
	})

	t.Run("Location", func(t *testing.T) {
		loc, err := archive.Location(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "exports", "4", "audit.csv"), loc)

		_, err = archive.Location(ctx, "exports/4/missing.csv")
		assert.Error(t, err)
	})
}

func TestGenerateExportKey(t *testing.T) {
	key := GenerateExportKey("4", "audit-logs-2024-05-01.csv")
	assert.Regexp(t, regexp.MustCompile(`^exports/4/[0-9a-f-]{36}_\d+\.csv$`), key)
	assert.NotEqual(t, key, GenerateExportKey("4", "audit-logs-2024-05-01.csv"))
}

func TestNewArchiveStore_LocalFallback(t *testing.T) {
	cfg := &config.Config{ExportDir: t.TempDir()}
	store := NewArchiveStore(cfg, nil)
	_, ok := store.(*LocalArchive)
	assert.True(t, ok)
}

func TestExportArchiver(t *testing.T) {
	ctx := context.Background()
	export := Export{FileName: "volunteers-2024-05-01.xlsx", ContentType: ContentTypeXLSX, Content: []byte("workbook")}

	t.Run("Stores under the organization prefix", func(t *testing.T) {
		dir := t.TempDir()
		archiver := NewExportArchiver(NewLocalArchive(dir), true, nil)
		require.True(t, archiver.Enabled())

		result, err := archiver.Archive(ctx, "4", export)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, strings.HasPrefix(result.Key, "exports/4/"))
		assert.True(t, strings.HasSuffix(result.Key, ".xlsx"))

		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(result.Key)))
		require.NoError(t, err)
		assert.Equal(t, "workbook", string(data))
		assert.Equal(t, filepath.Join(dir, filepath.FromSlash(result.Key)), result.Location)
	})

	t.Run("Disabled archiver is a no-op", func(t *testing.T) {
		archiver := NewExportArchiver(NewLocalArchive(t.TempDir()), false, nil)
		result, err := archiver.Archive(ctx, "4", export)
		assert.NoError(t, err)
		assert.Nil(t, result)

		var nilArchiver *ExportArchiver
		assert.False(t, nilArchiver.Enabled())
	})
}
