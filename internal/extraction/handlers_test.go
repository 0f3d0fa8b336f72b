package extraction

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract-document", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestExtractDocumentHandler(t *testing.T) {
	h := NewHandler(newTestService(&mockChat{response: modelJSON}, &mockOCR{text: "OCR TEXT"}, nil))

	rec := httptest.NewRecorder()
	h.ExtractDocument(rec, multipartUpload(t, "file", "offer.pdf", scannedPDF))

	require.Equal(t, http.StatusOK, rec.Code)
	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "TechSupply GmbH", res.VendorName)
	assert.Equal(t, "002", res.SuggestedCommodityGroupID)
}

func TestExtractDocumentHandlerRejectsNonPDF(t *testing.T) {
	h := NewHandler(newTestService(&mockChat{response: modelJSON}, &mockOCR{text: "OCR TEXT"}, nil))

	rec := httptest.NewRecorder()
	h.ExtractDocument(rec, multipartUpload(t, "file", "offer.docx", scannedPDF))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "only PDF files are allowed")
}

func TestExtractDocumentHandlerMissingFile(t *testing.T) {
	h := NewHandler(newTestService(&mockChat{response: modelJSON}, &mockOCR{text: "OCR TEXT"}, nil))

	rec := httptest.NewRecorder()
	h.ExtractDocument(rec, multipartUpload(t, "attachment", "offer.pdf", scannedPDF))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractDocumentHandlerExtractionFailure(t *testing.T) {
	h := NewHandler(newTestService(&mockChat{response: "garbage"}, &mockOCR{text: "OCR TEXT"}, nil))

	rec := httptest.NewRecorder()
	h.ExtractDocument(rec, multipartUpload(t, "file", "offer.pdf", scannedPDF))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
