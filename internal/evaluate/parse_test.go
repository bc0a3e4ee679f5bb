package evaluate

import (
	"errors"
	"testing"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantVerdict domain.Verdict
		wantExplain string
		wantText    string
	}{
		{
			name:        "plain JSON",
			raw:         `{"verdict":"compliant","explanation":"label present","label_text":"LAW LABEL"}`,
			wantVerdict: domain.VerdictCompliant,
			wantExplain: "label present",
			wantText:    "LAW LABEL",
		},
		{
			name: "json fence",
			raw: "```json\n" +
				`{"verdict":"non_compliant","explanation":"missing fiber content"}` +
				"\n```",
			wantVerdict: domain.VerdictNonCompliant,
			wantExplain: "missing fiber content",
		},
		{
			name: "bare fence",
			raw: "```\n" +
				`{"verdict":"inconclusive","explanation":"image too blurry"}` +
				"\n```",
			wantVerdict: domain.VerdictInconclusive,
			wantExplain: "image too blurry",
		},
		{
			name:        "prose around object",
			raw:         `Here is my analysis: {"verdict":"compliant","explanation":"ok"} Hope that helps.`,
			wantVerdict: domain.VerdictCompliant,
			wantExplain: "ok",
		},
		{
			name:        "hyphenated verdict",
			raw:         `{"verdict":"non-compliant","explanation":"wrong address"}`,
			wantVerdict: domain.VerdictNonCompliant,
			wantExplain: "wrong address",
		},
		{
			name:        "affirmative synonym",
			raw:         `{"verdict":"yes","explanation":"all requirements met"}`,
			wantVerdict: domain.VerdictCompliant,
			wantExplain: "all requirements met",
		},
		{
			name:        "whitespace trimming",
			raw:         `{"verdict":" compliant ","explanation":"  padded  ","label_text":" txt "}`,
			wantVerdict: domain.VerdictCompliant,
			wantExplain: "padded",
			wantText:    "txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.raw)
			if err != nil {
				t.Fatalf("parseResponse() error = %v", err)
			}
			if got.Verdict != tt.wantVerdict {
				t.Errorf("verdict = %q, want %q", got.Verdict, tt.wantVerdict)
			}
			if got.Explanation != tt.wantExplain {
				t.Errorf("explanation = %q, want %q", got.Explanation, tt.wantExplain)
			}
			if got.LabelText != tt.wantText {
				t.Errorf("label_text = %q, want %q", got.LabelText, tt.wantText)
			}
		})
	}
}

func TestParseResponse_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t "},
		{"no JSON", "the page looks compliant to me"},
		{"broken JSON", `{"verdict": "compliant", "explanation": `},
		{"unknown verdict", `{"verdict":"maybe","explanation":"?"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseResponse(tt.raw)
			if err == nil {
				t.Fatal("expected parse failure")
			}
			var failure ParseFailure
			if !errors.As(err, &failure) {
				t.Errorf("error = %T, want ParseFailure", err)
			}
			if failure.Reason == "" {
				t.Error("failure reason is empty")
			}
		})
	}
}

func TestNormalizeVerdict(t *testing.T) {
	tests := []struct {
		in     string
		want   domain.Verdict
		wantOK bool
	}{
		{"compliant", domain.VerdictCompliant, true},
		{"PASS", domain.VerdictCompliant, true},
		{"true", domain.VerdictCompliant, true},
		{"non_compliant", domain.VerdictNonCompliant, true},
		{"Failed", domain.VerdictNonCompliant, true},
		{"no", domain.VerdictNonCompliant, true},
		{"inconclusive", domain.VerdictInconclusive, true},
		{"Unclear", domain.VerdictInconclusive, true},
		{"", "", false},
		{"partial", "", false},
	}

	for _, tt := range tests {
		got, ok := normalizeVerdict(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("normalizeVerdict(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
