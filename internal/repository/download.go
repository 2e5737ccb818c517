package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/docx"
)

// DownloadPattern is the ServeMux pattern DownloadHandler expects.
const DownloadPattern = "GET /documents/{generationId}"

// OutputReader reads cached document bytes by key.
type OutputReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// DownloadHandler serves a generated document from the output cache until it
// expires. Expired or unknown generations answer 404.
func DownloadHandler(outputs OutputReader, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("generationId")
		if id == "" {
			http.Error(w, "missing generation id", http.StatusBadRequest)
			return
		}

		data, err := outputs.Get(r.Context(), OutputKey(id))
		if err != nil {
			if apperrors.Normalize(err).Code == apperrors.ErrCodeRecordNotFound {
				http.Error(w, "document expired or unknown", http.StatusNotFound)
				return
			}
			log.Error("Failed to read generated document", map[string]interface{}{
				"generationId": id,
				"error":        err.Error(),
			})
			http.Error(w, "document cache unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", docx.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.docx"`, id))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, _ = w.Write(data)
	})
}
