package media

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bachaboard/internal/dbmongo"
)

// FileServer streams stored blobs back out at GET /media/{fileId}
type FileServer struct {
	storage *dbmongo.MediaStorage
	logger  *zap.Logger
}

func NewFileServer(mongoClient *dbmongo.MongoClient, logger *zap.Logger) *FileServer {
	return &FileServer{
		storage: dbmongo.NewMediaStorage(mongoClient),
		logger:  logger,
	}
}

func (s *FileServer) ServeFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fileID := vars["fileId"]

	fileReader, mediaFile, err := s.storage.DownloadFile(r.Context(), fileID)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer fileReader.Close()

	contentType := mediaFile.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)

	if _, err := io.Copy(w, fileReader); err != nil {
		s.logger.Warn("error streaming media file", zap.String("file_id", fileID), zap.Error(err))
	}
}
