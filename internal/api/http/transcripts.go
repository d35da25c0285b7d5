package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tienganhkids/megatest/internal/storage"
)

// MountTranscripts serves archived generation transcripts for review.
// GET /transcripts/* returns the blob at whatever follows /transcripts/.
func MountTranscripts(r chi.Router, bs storage.BlobStore) {
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if key == "" || strings.Contains(key, "..") {
			http.Error(w, "bad key", http.StatusBadRequest)
			return
		}
		rc, err := bs.Get("transcripts/" + key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.Copy(w, rc)
	})
}
