package evaluate

import (
	"context"
	"errors"

	"github.com/Treedy2020/FinalCheck/internal/domain"
	"github.com/Treedy2020/FinalCheck/internal/observability"
)

// CompletionClient is the subset of the LLM client the evaluator needs.
type CompletionClient interface {
	Complete(ctx context.Context, system, prompt string, imagePNG []byte) (string, error)
	Model() string
}

// PageEvaluator judges a single page image against a single standard.
type PageEvaluator struct {
	client CompletionClient
	logger *observability.Logger
}

func NewPageEvaluator(client CompletionClient, logger *observability.Logger) *PageEvaluator {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &PageEvaluator{
		client: client,
		logger: logger.WithComponent("evaluator"),
	}
}

// Model reports the model identifier used for evaluations.
func (e *PageEvaluator) Model() string {
	return e.client.Model()
}

// Evaluate produces a verdict for one (page, standard) pair. Unit failures
// never abort the run: transport errors after retries and unparseable model
// output both degrade to an inconclusive verdict carrying the failure reason.
// An error is returned only when the context was cancelled, since the whole
// run is being torn down in that case.
func (e *PageEvaluator) Evaluate(ctx context.Context, page domain.PageImage, std domain.Standard) (domain.PageVerdict, error) {
	verdict := domain.PageVerdict{
		PageNumber: page.PageNumber,
		StandardID: std.ID,
	}

	raw, err := e.client.Complete(ctx, systemPrompt, buildPrompt(std), page.PNG)
	if err != nil {
		if ctx.Err() != nil {
			return domain.PageVerdict{}, ctx.Err()
		}
		e.logger.Warn().
			Int("page", page.PageNumber).
			Str("standard", std.ID).
			Err(err).
			Msg("Evaluation request failed, recording inconclusive verdict")
		verdict.Verdict = domain.VerdictInconclusive
		verdict.FailureReason = err.Error()
		return verdict, nil
	}

	verdict.RawOutput = raw

	parsed, err := parseResponse(raw)
	if err != nil {
		var failure ParseFailure
		if errors.As(err, &failure) {
			e.logger.Warn().
				Int("page", page.PageNumber).
				Str("standard", std.ID).
				Str("reason", failure.Reason).
				Msg("Model output could not be parsed, recording inconclusive verdict")
			verdict.Verdict = domain.VerdictInconclusive
			verdict.FailureReason = failure.Reason
			return verdict, nil
		}
		return domain.PageVerdict{}, err
	}

	verdict.Verdict = parsed.Verdict
	verdict.Explanation = parsed.Explanation
	verdict.ExtractedText = parsed.LabelText

	e.logger.Debug().
		Int("page", page.PageNumber).
		Str("standard", std.ID).
		Str("verdict", string(verdict.Verdict)).
		Msg("Page evaluated")

	return verdict, nil
}
