package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

// minimalPDF builds a valid empty PDF with the given number of blank pages,
// computing the xref table offsets as it goes.
func minimalPDF(pages int) []byte {
	var body bytes.Buffer
	var offsets []int

	write := func(s string) {
		offsets = append(offsets, body.Len())
		body.WriteString(s)
	}

	body.WriteString("%PDF-1.4\n")

	kids := ""
	for i := 0; i < pages; i++ {
		if i > 0 {
			kids += " "
		}
		kids += fmt.Sprintf("%d 0 R", 3+i)
	}

	write("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	write(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", kids, pages))
	for i := 0; i < pages; i++ {
		write(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] >>\nendobj\n", 3+i))
	}

	xrefStart := body.Len()
	body.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	body.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		body.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	body.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefStart))

	return body.Bytes()
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestValidateDocument(t *testing.T) {
	v := NewValidator(1024)

	tests := []struct {
		name     string
		doc      domain.Document
		wantKind domain.ErrorKind
	}{
		{
			name: "valid pdf header",
			doc:  domain.Document{Kind: domain.DocumentKindPDF, Data: minimalPDF(1)},
		},
		{
			name:     "empty document",
			doc:      domain.Document{Kind: domain.DocumentKindPDF},
			wantKind: domain.KindDocument,
		},
		{
			name:     "not a pdf",
			doc:      domain.Document{Kind: domain.DocumentKindPDF, Data: []byte("hello world")},
			wantKind: domain.KindDocument,
		},
		{
			name:     "oversize file",
			doc:      domain.Document{Kind: domain.DocumentKindPDF, Data: bytes.Repeat([]byte("%PDF-"), 2048)},
			wantKind: domain.KindPageLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDocument(tt.doc)
			if tt.wantKind == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !domain.IsKind(err, tt.wantKind) {
				t.Errorf("error = %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}

func TestRasterize_PageOrder(t *testing.T) {
	r := NewRasterizer(90, 10*1024*1024, 50)

	doc := domain.Document{
		Name: "three-pages.pdf",
		Kind: domain.DocumentKindPDF,
		Data: minimalPDF(3),
	}

	pages, err := r.Rasterize(context.Background(), doc)
	if err != nil {
		t.Fatalf("Rasterize() error: %v", err)
	}

	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(pages))
	}
	for i, page := range pages {
		if page.PageNumber != i+1 {
			t.Errorf("page[%d].PageNumber = %d, want %d", i, page.PageNumber, i+1)
		}
		if len(page.PNG) == 0 {
			t.Errorf("page %d has no image data", page.PageNumber)
		}
		if page.Width <= 0 || page.Height <= 0 {
			t.Errorf("page %d has invalid dimensions %dx%d", page.PageNumber, page.Width, page.Height)
		}
	}
}

func TestRasterize_SizeLimitBeforeRendering(t *testing.T) {
	r := NewRasterizer(90, 64, 50) // 64 byte limit

	doc := domain.Document{Kind: domain.DocumentKindPDF, Data: minimalPDF(1)}

	_, err := r.Rasterize(context.Background(), doc)
	if err == nil {
		t.Fatal("expected size limit error")
	}
	if !domain.IsKind(err, domain.KindPageLimit) {
		t.Errorf("error = %v, want page_limit", err)
	}
}

func TestRasterize_PageCap(t *testing.T) {
	r := NewRasterizer(90, 10*1024*1024, 2)

	doc := domain.Document{Kind: domain.DocumentKindPDF, Data: minimalPDF(3)}

	_, err := r.Rasterize(context.Background(), doc)
	if err == nil {
		t.Fatal("expected page cap error")
	}
	if !domain.IsKind(err, domain.KindPageLimit) {
		t.Errorf("error = %v, want page_limit", err)
	}
}

func TestRasterize_CorruptPDF(t *testing.T) {
	r := NewRasterizer(90, 10*1024*1024, 50)

	doc := domain.Document{
		Kind: domain.DocumentKindPDF,
		Data: []byte("%PDF-1.4\nthis is not actually a pdf body"),
	}

	_, err := r.Rasterize(context.Background(), doc)
	if err == nil {
		t.Fatal("expected error for corrupt PDF")
	}
	if !domain.IsKind(err, domain.KindDocument) {
		t.Errorf("error = %v, want document", err)
	}
}

func TestRasterize_SingleImage(t *testing.T) {
	r := NewRasterizer(90, 10*1024*1024, 50)

	doc := domain.Document{
		Name: "label.png",
		Kind: domain.DocumentKindImage,
		Data: testPNG(t, 120, 80),
	}

	pages, err := r.Rasterize(context.Background(), doc)
	if err != nil {
		t.Fatalf("Rasterize() error: %v", err)
	}

	if len(pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1", len(pages))
	}
	if pages[0].PageNumber != 1 {
		t.Errorf("PageNumber = %d, want 1", pages[0].PageNumber)
	}
	if pages[0].Width != 120 || pages[0].Height != 80 {
		t.Errorf("dimensions = %dx%d, want 120x80", pages[0].Width, pages[0].Height)
	}
}

func TestRasterize_Cancelled(t *testing.T) {
	r := NewRasterizer(90, 10*1024*1024, 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := domain.Document{Kind: domain.DocumentKindPDF, Data: minimalPDF(2)}

	if _, err := r.Rasterize(ctx, doc); err == nil {
		t.Error("expected context cancellation error")
	}
}
