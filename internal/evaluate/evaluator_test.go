package evaluate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) Complete(ctx context.Context, system, prompt string, imagePNG []byte) (string, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) Model() string { return "test/model" }

var testPage = domain.PageImage{PageNumber: 2, PNG: []byte("png-bytes"), Width: 100, Height: 100}

var testStandard = domain.Standard{
	ID:           "uniform_law_labels",
	Title:        "Uniform Law Labels",
	Description:  "Law label requirements for filled bedding products.",
	Requirements: []string{"URN number", "Fiber content"},
}

func TestEvaluate_Compliant(t *testing.T) {
	client := &fakeClient{
		response: `{"verdict":"compliant","explanation":"label shows URN and fiber content","label_text":"ALL NEW MATERIAL"}`,
	}
	ev := NewPageEvaluator(client, nil)

	got, err := ev.Evaluate(context.Background(), testPage, testStandard)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got.PageNumber != 2 || got.StandardID != "uniform_law_labels" {
		t.Errorf("identity = (%d, %q), want (2, uniform_law_labels)", got.PageNumber, got.StandardID)
	}
	if got.Verdict != domain.VerdictCompliant {
		t.Errorf("verdict = %q, want compliant", got.Verdict)
	}
	if got.ExtractedText != "ALL NEW MATERIAL" {
		t.Errorf("extracted text = %q", got.ExtractedText)
	}
	if got.RawOutput != client.response {
		t.Error("raw output not retained")
	}
	if got.FailureReason != "" {
		t.Errorf("unexpected failure reason %q", got.FailureReason)
	}
}

func TestEvaluate_TransportFailureIsInconclusive(t *testing.T) {
	client := &fakeClient{err: domain.EvaluationError("request failed after 3 attempts", errors.New("503"))}
	ev := NewPageEvaluator(client, nil)

	got, err := ev.Evaluate(context.Background(), testPage, testStandard)
	if err != nil {
		t.Fatalf("Evaluate() error = %v, want degraded verdict", err)
	}
	if got.Verdict != domain.VerdictInconclusive {
		t.Errorf("verdict = %q, want inconclusive", got.Verdict)
	}
	if got.FailureReason == "" {
		t.Error("failure reason not recorded")
	}
}

func TestEvaluate_UnparseableOutputIsInconclusive(t *testing.T) {
	client := &fakeClient{response: "I think this page is probably fine."}
	ev := NewPageEvaluator(client, nil)

	got, err := ev.Evaluate(context.Background(), testPage, testStandard)
	if err != nil {
		t.Fatalf("Evaluate() error = %v, want degraded verdict", err)
	}
	if got.Verdict != domain.VerdictInconclusive {
		t.Errorf("verdict = %q, want inconclusive", got.Verdict)
	}
	if got.RawOutput != client.response {
		t.Error("raw output not retained for audit")
	}
	if got.FailureReason == "" {
		t.Error("failure reason not recorded")
	}
}

func TestEvaluate_CancelledContextPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{response: `{"verdict":"compliant","explanation":"ok"}`}
	ev := NewPageEvaluator(client, nil)

	if _, err := ev.Evaluate(ctx, testPage, testStandard); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestBuildPrompt_IncludesRequirements(t *testing.T) {
	prompt := buildPrompt(testStandard)
	for _, want := range []string{"Uniform Law Labels", "uniform_law_labels", "1. URN number", "2. Fiber content", `"verdict"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
