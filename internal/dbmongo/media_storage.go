package dbmongo

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MediaStorage struct {
	gridFS *gridfs.Bucket
}

func NewMediaStorage(mongoClient *MongoClient) *MediaStorage {
	return &MediaStorage{
		gridFS: mongoClient.GridFS,
	}
}

type MediaFile struct {
	ID         string    `json:"id"`          // GridFS ObjectID hex
	Filename   string    `json:"filename"`    // Stored filename
	Size       int64     `json:"size"`        // File size in bytes
	MimeType   string    `json:"mime_type"`   // Full MIME type
	UploadedBy uint64    `json:"uploaded_by"` // User ID who uploaded
	UploadedAt time.Time `json:"uploaded_at"` // Upload timestamp
}

// UploadFile streams content into GridFS and returns the stored file metadata
func (ms *MediaStorage) UploadFile(ctx context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*MediaFile, error) {
	metadata := bson.M{
		"mime_type":   mimeType,
		"uploaded_by": uploaderID,
		"uploaded_at": time.Now(),
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := ms.gridFS.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer stream.Close()

	size, err := io.Copy(stream, content)
	if err != nil {
		return nil, fmt.Errorf("file copy failed: %w", err)
	}

	fileID, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected GridFS file id type %T", stream.FileID)
	}

	return &MediaFile{
		ID:         fileID.Hex(),
		Filename:   filename,
		Size:       size,
		MimeType:   mimeType,
		UploadedBy: uploaderID,
		UploadedAt: time.Now(),
	}, nil
}

// DownloadFile opens a read stream for the stored file with the given hex id
func (ms *MediaStorage) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *MediaFile, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid file id: %w", err)
	}

	stream, err := ms.gridFS.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}

	file := stream.GetFile()
	media := &MediaFile{
		ID:       fileID,
		Filename: file.Name,
		Size:     file.Length,
	}
	if file.Metadata != nil {
		var meta struct {
			MimeType string `bson:"mime_type"`
		}
		if err := bson.Unmarshal(file.Metadata, &meta); err == nil {
			media.MimeType = meta.MimeType
		}
	}

	return stream, media, nil
}

// DeleteFile removes the stored file with the given hex id
func (ms *MediaStorage) DeleteFile(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("invalid file id: %w", err)
	}
	return ms.gridFS.Delete(objectID)
}
