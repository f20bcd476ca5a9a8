package transport

import (
	"io"
	"net/http"

	"terra-form/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ImageSaver persists an uploaded file and returns its public URL
type ImageSaver interface {
	Save(src io.Reader, originalName string) (string, error)
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// UploadHandler handles image uploads into the public image directory
type UploadHandler struct {
	images    ImageSaver
	maxMemory int64
	logger    *zap.Logger
}

// NewUploadHandler creates a new UploadHandler. maxMemory bounds the part
// of a multipart body kept in memory before spilling to temp files.
func NewUploadHandler(images ImageSaver, maxMemory int64, logger *zap.Logger) *UploadHandler {
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	return &UploadHandler{
		images:    images,
		maxMemory: maxMemory,
		logger:    logger,
	}
}

// RegisterRoutes registers the upload route behind adminMiddleware
func (h *UploadHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.With(adminMiddleware).Post("/api/upload", h.Upload)
}

// Upload handles POST /api/upload with a multipart "image" field
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		h.logger.Debug("Upload rejected", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	url, err := h.images.Save(file, header.Filename)
	if err != nil {
		h.logger.Error("Failed to store upload",
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	h.logger.Info("Image uploaded",
		zap.String("url", url),
		zap.Int64("size", header.Size),
	)
	middleware.RespondWithJSON(w, http.StatusOK, UploadResponse{Success: true, URL: url})
}
