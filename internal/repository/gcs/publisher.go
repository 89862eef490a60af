package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"dailypack/internal/domain"
	"dailypack/internal/repository/filesystem"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

const uploadTimeout = 2 * time.Minute

// uploader writes one object
type uploader interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) error
}

// Publisher implements repository.Publisher on a Cloud Storage bucket
type Publisher struct {
	root   string
	prefix string
	up     uploader
	logger *zap.Logger
}

// NewPublisher opens a storage client for the bucket. STORAGE_EMULATOR_HOST is honored by the client.
func NewPublisher(ctx context.Context, bucket, prefix, root string, logger *zap.Logger) (*Publisher, *storage.Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return newPublisher(root, prefix, &bucketUploader{bucket: client.Bucket(bucket)}, logger), client, nil
}

func newPublisher(root, prefix string, up uploader, logger *zap.Logger) *Publisher {
	return &Publisher{
		root:   root,
		prefix: strings.Trim(prefix, "/"),
		up:     up,
		logger: logger,
	}
}

// Publish uploads the images the pack references and then daily/<date>.json, so the remote pack never points at a missing image.
// Other files left in images/<date>/ by earlier runs stay local.
func (p *Publisher) Publish(ctx context.Context, day domain.Day, pack *domain.DailyPack) error {
	assets := filesystem.NewAssetRepo(p.root)

	seen := make(map[string]bool, len(pack.Words))
	for _, w := range pack.Words {
		if w.Image.Path == "" || seen[w.Image.Path] {
			continue
		}
		seen[w.Image.Path] = true

		key := p.Key(strings.TrimPrefix(w.Image.Path, "/"))
		if err := p.uploadFile(ctx, assets.Abs(w.Image), key); err != nil {
			return err
		}
	}

	packKey := p.Key(filesystem.DailyDir, day.Key()+".json")
	if err := p.uploadFile(ctx, filesystem.NewPackRepo(p.root).PackPath(day.Key()), packKey); err != nil {
		return err
	}

	p.logger.Info("Pack published",
		zap.String("date", day.Key()),
		zap.String("pack", packKey),
		zap.Int("images", len(seen)),
	)
	return nil
}

// Key joins the configured prefix and the object path
func (p *Publisher) Key(parts ...string) string {
	if p.prefix != "" {
		parts = append([]string{p.prefix}, parts...)
	}
	return path.Join(parts...)
}

func (p *Publisher) uploadFile(ctx context.Context, local, key string) error {
	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", local, err)
	}
	defer f.Close()

	if err := p.up.Upload(ctx, key, contentTypeForKey(key), f); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

type bucketUploader struct {
	bucket *storage.BucketHandle
}

func (u *bucketUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := u.bucket.Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if strings.HasSuffix(key, ".json") {
		w.CacheControl = "no-cache"
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func contentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".json":
		return "application/json"
	}
	return ""
}
