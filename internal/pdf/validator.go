package pdf

import (
	"bytes"
	"fmt"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

var pdfMagic = []byte("%PDF-")

// Validator provides input validation for uploaded documents. The size limit
// is enforced here, before any rasterization work begins.
type Validator struct {
	maxBytes int64
}

// NewValidator creates a new validator with the given size limit.
func NewValidator(maxBytes int64) *Validator {
	return &Validator{maxBytes: maxBytes}
}

// ValidateDocument checks the raw bytes of an uploaded document.
func (v *Validator) ValidateDocument(doc domain.Document) error {
	if len(doc.Data) == 0 {
		return domain.DocumentError("document is empty", nil)
	}

	if int64(len(doc.Data)) > v.maxBytes {
		return domain.PageLimitError(
			fmt.Sprintf("file size %d bytes exceeds the %d byte limit", len(doc.Data), v.maxBytes), nil)
	}

	if doc.Kind == domain.DocumentKindPDF && !bytes.HasPrefix(doc.Data, pdfMagic) {
		return domain.DocumentError("input is not a PDF (missing %PDF- header)", nil)
	}

	return nil
}
