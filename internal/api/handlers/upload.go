package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/chrono-task/backend/internal/pdftext"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

type uploadResponse struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"documentId"`
	FileName   string `json:"fileName"`
	Text       string `json:"text"`
	TextLength int    `json:"textLength"`
	PageCount  int    `json:"pageCount,omitempty"`
}

// Upload serves POST /api/upload: a multipart PDF whose text becomes
// the analysis input for document-based study plans.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, pdftext.MaxFileSize+4096)

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		jsonError(w, "Only PDF files are supported", http.StatusBadRequest)
		return
	}

	if header.Size > pdftext.MaxFileSize {
		jsonError(w, "File size must be less than 10MB", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	doc, err := pdftext.Extract(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdftext.ErrNoTextContent) {
			jsonResponse(w, map[string]string{
				"error": "Unable to extract text from this PDF. The PDF may be image-based or scanned.",
				"code":  "NO_TEXT_CONTENT",
			}, http.StatusBadRequest)
			return
		}
		log.Printf("[upload] pdf extraction failed for %s: %v", header.Filename, err)
		jsonError(w, "Failed to process PDF", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, uploadResponse{
		Success:    true,
		DocumentID: uuid.NewString(),
		FileName:   header.Filename,
		Text:       doc.Text,
		TextLength: len(doc.Text),
		PageCount:  doc.PageCount,
	}, http.StatusOK)
}
