package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"casa_portal_go/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// archiveLinkTTL bounds presigned archive links
const archiveLinkTTL = 15 * time.Minute

// ArchiveStore keeps copies of generated exports
type ArchiveStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (*ArchivedExport, error)
	// Location returns where an archived export can be fetched from
	Location(ctx context.Context, key string) (string, error)
}

// ArchivedExport describes a stored export
type ArchivedExport struct {
	Key         string
	FileName    string
	Size        int64
	ContentType string
	StoredAt    time.Time
	Location    string
}

// NewArchiveStore picks R2 when fully configured and reachable, else the local filesystem
func NewArchiveStore(cfg *config.Config, logger *zap.Logger) ArchiveStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
		logger.Info("export archive: local filesystem", zap.String("path", cfg.ExportDir))
		return NewLocalArchive(cfg.ExportDir)
	}

	r2, err := NewR2Archive(cfg)
	if err != nil {
		logger.Warn("failed to initialize R2 archive, falling back to local", zap.Error(err))
		return NewLocalArchive(cfg.ExportDir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := r2.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(r2.bucket)}); err != nil {
		logger.Warn("R2 bucket unreachable, falling back to local archive", zap.Error(err))
		return NewLocalArchive(cfg.ExportDir)
	}

	logger.Info("export archive: Cloudflare R2", zap.String("bucket", r2.bucket))
	return r2
}

// R2Archive stores exports in a Cloudflare R2 bucket through the S3 API
type R2Archive struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// NewR2Archive builds the S3 client for https://<account>.r2.cloudflarestorage.com
func NewR2Archive(cfg *config.Config) (*R2Archive, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return &R2Archive{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.R2BucketName,
		publicURL: strings.TrimSuffix(cfg.R2PublicURL, "/"),
	}, nil
}

func (r *R2Archive) Put(ctx context.Context, key, contentType string, body []byte) (*ArchivedExport, error) {
	fileName := path.Base(key)
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(r.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(body),
		ContentType:        aws.String(contentType),
		ContentLength:      aws.Int64(int64(len(body))),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", fileName)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload export to R2: %w", err)
	}
	return &ArchivedExport{Key: key, FileName: fileName, Size: int64(len(body)), ContentType: contentType, StoredAt: time.Now()}, nil
}

// Location prefers the public bucket URL and falls back to a short-lived presigned link
func (r *R2Archive) Location(ctx context.Context, key string) (string, error) {
	if r.publicURL != "" {
		return r.publicURL + "/" + key, nil
	}
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(archiveLinkTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign archive link: %w", err)
	}
	return req.URL, nil
}

// LocalArchive stores exports under a directory that is not served publicly
type LocalArchive struct {
	baseDir string
}

func NewLocalArchive(baseDir string) *LocalArchive {
	return &LocalArchive{baseDir: baseDir}
}

func (l *LocalArchive) path(key string) string {
	return filepath.Join(l.baseDir, filepath.FromSlash(key))
}

// Put writes through a temp file so readers never see a partial export
func (l *LocalArchive) Put(ctx context.Context, key, contentType string, body []byte) (*ArchivedExport, error) {
	target := l.path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".export-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write archive file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write archive file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return nil, fmt.Errorf("failed to move archive file: %w", err)
	}

	return &ArchivedExport{Key: key, FileName: path.Base(key), Size: int64(len(body)), ContentType: contentType, StoredAt: time.Now()}, nil
}

// Location returns the file path when the export exists
func (l *LocalArchive) Location(ctx context.Context, key string) (string, error) {
	p := l.path(key)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("archived export %s: %w", key, err)
	}
	return p, nil
}

// GenerateExportKey creates exports/<organization>/<uuid>_<unix>.<ext>
func GenerateExportKey(organizationID, fileName string) string {
	name := fmt.Sprintf("%s_%d%s", uuid.NewString(), time.Now().Unix(), path.Ext(fileName))
	return path.Join("exports", organizationID, name)
}
