// Package domain holds the core types shared across the compliance pipeline.
package domain

import "time"

// Verdict is the tri-state outcome of a compliance check.
type Verdict string

const (
	VerdictCompliant    Verdict = "compliant"
	VerdictNonCompliant Verdict = "non_compliant"
	VerdictInconclusive Verdict = "inconclusive"
)

// ValidVerdict reports whether v is one of the three known outcomes.
func ValidVerdict(v Verdict) bool {
	switch v {
	case VerdictCompliant, VerdictNonCompliant, VerdictInconclusive:
		return true
	}
	return false
}

// DocumentKind distinguishes PDF uploads from single-image uploads.
type DocumentKind string

const (
	DocumentKindPDF   DocumentKind = "pdf"
	DocumentKindImage DocumentKind = "image"
)

// Document is an immutable uploaded file, owned by the pipeline for the
// duration of one analysis run.
type Document struct {
	Name string
	Kind DocumentKind
	Data []byte
}

// PageImage is one rendered page, PNG-encoded at a fixed DPI.
// PageNumber is 1-based and contiguous within a document.
type PageImage struct {
	PageNumber int
	PNG        []byte
	Width      int
	Height     int
}

// Standard is a named compliance rule the model checks a page against.
type Standard struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Requirements []string `yaml:"requirements" json:"requirements"`
}

// PageVerdict is the result of evaluating one page against one standard.
// RawOutput keeps the model's unmodified response for audit; FailureReason is
// set only when the verdict is inconclusive because evaluation failed.
type PageVerdict struct {
	PageNumber    int     `json:"pageNumber"`
	StandardID    string  `json:"standardId"`
	Verdict       Verdict `json:"verdict"`
	Explanation   string  `json:"explanation,omitempty"`
	ExtractedText string  `json:"extractedText,omitempty"`
	RawOutput     string  `json:"rawOutput,omitempty"`
	FailureReason string  `json:"failureReason,omitempty"`
}

// StandardReport is the aggregate outcome for one standard across all pages.
type StandardReport struct {
	StandardID        string        `json:"standardId"`
	Title             string        `json:"title"`
	Verdict           Verdict       `json:"verdict"`
	Note              string        `json:"note,omitempty"`
	CompliantPages    []int         `json:"compliantPages,omitempty"`
	NonCompliantPages []int         `json:"nonCompliantPages,omitempty"`
	InconclusivePages []int         `json:"inconclusivePages,omitempty"`
	PageVerdicts      []PageVerdict `json:"pageVerdicts"`
}

// ComplianceReport aggregates every verdict for one document.
// It is immutable once returned by the aggregator.
type ComplianceReport struct {
	DocumentName      string           `json:"documentName"`
	PageCount         int              `json:"pageCount"`
	Overall           Verdict          `json:"overall"`
	Standards         []StandardReport `json:"standards"`
	CompliantPages    int              `json:"compliantPages"`
	NonCompliantPages int              `json:"nonCompliantPages"`
	InconclusivePages int              `json:"inconclusivePages"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}

// StandardFor returns the report section for the given standard id.
func (r *ComplianceReport) StandardFor(id string) (StandardReport, bool) {
	for _, s := range r.Standards {
		if s.StandardID == id {
			return s, true
		}
	}
	return StandardReport{}, false
}

// ProductType maps a product category to the standards it must carry.
type ProductType struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Standards []string `yaml:"standards" json:"standards"`
}
