package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Uploads are capped at 10 MB, matching what the hosted OCR model accepts.
const maxPDFSizeBytes = 10 * 1024 * 1024

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ExtractDocument accepts a multipart PDF upload and returns the extracted
// field guesses. Failures are non-fatal to the caller: the form stays usable
// for manual entry.
func (h *Handler) ExtractDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPDFSizeBytes+1024*1024)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file upload required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" || !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		http.Error(w, "only PDF files are allowed", http.StatusBadRequest)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}
	if len(content) > maxPDFSizeBytes {
		http.Error(w, fmt.Sprintf("file too large, maximum size is %d MB", maxPDFSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Extract(r.Context(), content, header.Filename)
	if err != nil {
		if errors.Is(err, ErrExtraction) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
