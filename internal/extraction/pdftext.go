package extraction

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// textLayer pulls the embedded text layer out of a PDF, page by page.
// Scanned documents have no text layer and yield an empty string, which
// routes the document to the OCR fallback. The parser is known to panic on
// some malformed files, so failures of any kind degrade to "no text".
func textLayer(content []byte) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String()
}
