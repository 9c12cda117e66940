// Package documents accepts wizard file uploads. Files are validated but not
// stored: the handler fabricates a file ID the wizard carries forward, the
// same contract a real object store integration would satisfy.
package documents

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/httputil"
	"passportal/pkg/requestcontext"
)

// maxUploadBytes caps one document at 10MB.
const maxUploadBytes = 10 << 20

// allowedExtensions is the upload whitelist, matched per extension after
// lowercasing.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
}

// Handler exposes the upload endpoint.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Register mounts the upload endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/documents/upload", h.HandleUpload)
}

type uploadResponse struct {
	Status   string `json:"status"`
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}

// HandleUpload handles POST /api/documents/upload multipart requests. The
// file must arrive in the "file" form field.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "file exceeds the 10MB limit"))
			return
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "expected a multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing file field"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeInvalidInput, "unsupported file type %q; allowed: jpeg, jpg, png, pdf", ext))
		return
	}

	fileID := uuid.NewString()
	h.logger.InfoContext(ctx, "document upload accepted",
		"request_id", requestID,
		"file_id", fileID,
		"file_name", header.Filename,
		"size", header.Size,
	)
	httputil.WriteJSON(w, http.StatusOK, uploadResponse{
		Status:   "success",
		FileID:   fileID,
		FileName: header.Filename,
		Size:     header.Size,
	})
}
