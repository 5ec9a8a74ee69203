// Package media implements the blob gateway: store an image, get back a
// durable URL. Blobs live in GridFS; when Mongo is not configured the
// gateway degrades to deterministic placeholder URLs that callers must not
// expect to resolve.
package media

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bachaboard/internal/config"
	"bachaboard/internal/dbmongo"
)

// Gateway stores an image payload and returns a durable URL for it
type Gateway interface {
	StoreImage(ctx context.Context, folder string, uploaderID uint64, filename, mimeType string, content io.Reader) (string, error)
}

// GridFSGateway stores blobs in MongoDB GridFS and serves them back
// through the /media/{fileId} endpoint.
type GridFSGateway struct {
	storage *dbmongo.MediaStorage
	baseURL string
}

func NewGridFSGateway(mongoClient *dbmongo.MongoClient, cfg *config.Config) *GridFSGateway {
	return &GridFSGateway{
		storage: dbmongo.NewMediaStorage(mongoClient),
		baseURL: cfg.Media.BaseURL,
	}
}

func (g *GridFSGateway) StoreImage(ctx context.Context, folder string, uploaderID uint64, filename, mimeType string, content io.Reader) (string, error) {
	// original filenames are untrusted; store under a generated name
	storedName := fmt.Sprintf("%s_%s%s", folder, uuid.NewString(), path.Ext(filename))

	file, err := g.storage.UploadFile(ctx, storedName, mimeType, uploaderID, content)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	return fmt.Sprintf("%s/media/%s", g.baseURL, file.ID), nil
}

// PlaceholderGateway is the fallback when no blob store is configured.
// URLs are deterministic per folder so the UI stays stable in dev mode.
type PlaceholderGateway struct {
	logger *zap.Logger
}

func NewPlaceholderGateway(logger *zap.Logger) *PlaceholderGateway {
	return &PlaceholderGateway{logger: logger}
}

func (g *PlaceholderGateway) StoreImage(ctx context.Context, folder string, uploaderID uint64, filename, mimeType string, content io.Reader) (string, error) {
	// drain the payload so clients finish their upload normally
	_, _ = io.Copy(io.Discard, content)

	if g.logger != nil {
		g.logger.Info("media store not configured, returning placeholder URL",
			zap.String("folder", folder),
			zap.Uint64("uploader_id", uploaderID),
		)
	}
	return PlaceholderURL(folder), nil
}

// PlaceholderURL is the documented fallback URL shape
func PlaceholderURL(folder string) string {
	return fmt.Sprintf("https://via.placeholder.com/400x300?text=%s", folder)
}

// NewGateway picks the GridFS gateway when Mongo is configured and the
// placeholder gateway otherwise. mongoClient may be nil in the latter case.
func NewGateway(cfg *config.Config, mongoClient *dbmongo.MongoClient, logger *zap.Logger) Gateway {
	if cfg.MongoDB.Enabled && mongoClient != nil {
		return NewGridFSGateway(mongoClient, cfg)
	}
	return NewPlaceholderGateway(logger)
}
