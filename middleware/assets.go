package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

var (
	assetVersions     map[string]string
	assetVersionsMu   sync.RWMutex
	versionedAssets   = []string{"css/style.css", "js/app.js"}
	defaultAssetLabel = "1"
)

// InitAssetVersions hashes the static assets under dir for cache busting
func InitAssetVersions(dir string, logger *zap.Logger) {
	versions := make(map[string]string, len(versionedAssets))
	for _, name := range versionedAssets {
		version := computeFileHash(filepath.Join(dir, name))
		if version == "" {
			logger.Warn("Asset not hashed, using default version", zap.String("asset", name))
			version = defaultAssetLabel
		}
		versions[name] = version
	}

	assetVersionsMu.Lock()
	assetVersions = versions
	assetVersionsMu.Unlock()
	logger.Info("Asset versions initialized", zap.Int("files", len(versions)))
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return ""
	}
	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetAssetVersion returns the version hash for an asset path relative to the static dir
func GetAssetVersion(ctx context.Context, name string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if version, ok := assetVersions[name]; ok {
		return version
	}
	return defaultAssetLabel
}
