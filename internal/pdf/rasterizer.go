// Package pdf converts uploaded documents into ordered page images.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	// Single-image uploads may be JPEG; register the decoder.
	_ "image/jpeg"

	"github.com/gen2brain/go-fitz"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

// Rasterizer converts a Document into a sequence of PNG page images at a
// fixed DPI using go-fitz. Page order matches document order; page numbers
// are 1-based and contiguous.
type Rasterizer struct {
	validator *Validator
	dpi       float64
	maxPages  int
}

// NewRasterizer creates a rasterizer with the given resolution and limits.
func NewRasterizer(dpi float64, maxBytes int64, maxPages int) *Rasterizer {
	return &Rasterizer{
		validator: NewValidator(maxBytes),
		dpi:       dpi,
		maxPages:  maxPages,
	}
}

// Rasterize renders every page of the document. The whole document is
// validated and rendered before any evaluation is dispatched.
func (r *Rasterizer) Rasterize(ctx context.Context, doc domain.Document) ([]domain.PageImage, error) {
	if err := r.validator.ValidateDocument(doc); err != nil {
		return nil, err
	}

	if doc.Kind == domain.DocumentKindImage {
		page, err := r.wrapImage(doc.Data)
		if err != nil {
			return nil, err
		}
		return []domain.PageImage{page}, nil
	}

	fdoc, err := fitz.NewFromMemory(doc.Data)
	if err != nil {
		return nil, domain.DocumentError("failed to open PDF", err)
	}
	defer fdoc.Close()

	pageCount := fdoc.NumPage()
	if pageCount == 0 {
		return nil, domain.DocumentError("PDF has no pages", nil)
	}
	if pageCount > r.maxPages {
		return nil, domain.PageLimitError(
			fmt.Sprintf("PDF has %d pages, exceeding the %d page limit", pageCount, r.maxPages), nil)
	}

	pages := make([]domain.PageImage, 0, pageCount)

	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := fdoc.ImageDPI(pageNum, r.dpi)
		if err != nil {
			return nil, domain.DocumentError(fmt.Sprintf("failed to render page %d", pageNum+1), err)
		}

		page, err := encodePage(pageNum+1, img)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, nil
}

// wrapImage turns a single uploaded image into a one-page document.
func (r *Rasterizer) wrapImage(data []byte) (domain.PageImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.PageImage{}, domain.DocumentError("failed to decode image", err)
	}
	return encodePage(1, img)
}

func encodePage(pageNumber int, img image.Image) (domain.PageImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return domain.PageImage{}, domain.DocumentError(fmt.Sprintf("failed to encode page %d as PNG", pageNumber), err)
	}

	bounds := img.Bounds()
	return domain.PageImage{
		PageNumber: pageNumber,
		PNG:        buf.Bytes(),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
	}, nil
}
