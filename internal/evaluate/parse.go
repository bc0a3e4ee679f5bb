package evaluate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

// ParsedVerdict is the structured outcome extracted from a model response.
type ParsedVerdict struct {
	Verdict     domain.Verdict
	Explanation string
	LabelText   string
}

// ParseFailure records why a response could not be turned into a verdict.
// The raw output is retained by the caller for auditability.
type ParseFailure struct {
	Reason string
}

func (f ParseFailure) Error() string {
	return "unparseable model output: " + f.Reason
}

type responsePayload struct {
	Verdict     string `json:"verdict"`
	Explanation string `json:"explanation"`
	LabelText   string `json:"label_text"`
}

// parseResponse extracts a verdict from the raw model output. Models
// sometimes wrap JSON in markdown fences or prepend prose despite
// instructions, so the parser strips fences and falls back to locating the
// outermost JSON object before giving up.
func parseResponse(raw string) (ParsedVerdict, error) {
	candidate := stripFences(strings.TrimSpace(raw))
	if candidate == "" {
		return ParsedVerdict{}, ParseFailure{Reason: "empty response"}
	}

	var payload responsePayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		// Look for an embedded object before failing outright.
		start := strings.Index(candidate, "{")
		end := strings.LastIndex(candidate, "}")
		if start < 0 || end <= start {
			return ParsedVerdict{}, ParseFailure{Reason: "no JSON object in response"}
		}
		if err := json.Unmarshal([]byte(candidate[start:end+1]), &payload); err != nil {
			return ParsedVerdict{}, ParseFailure{Reason: fmt.Sprintf("invalid JSON: %v", err)}
		}
	}

	verdict, ok := normalizeVerdict(payload.Verdict)
	if !ok {
		return ParsedVerdict{}, ParseFailure{Reason: fmt.Sprintf("unrecognized verdict %q", payload.Verdict)}
	}

	return ParsedVerdict{
		Verdict:     verdict,
		Explanation: strings.TrimSpace(payload.Explanation),
		LabelText:   strings.TrimSpace(payload.LabelText),
	}, nil
}

// stripFences removes a single markdown code fence wrapping the content.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// normalizeVerdict maps common model phrasings onto the canonical tri-state.
func normalizeVerdict(s string) (domain.Verdict, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compliant", "yes", "true", "pass", "passed":
		return domain.VerdictCompliant, true
	case "non_compliant", "non-compliant", "noncompliant", "no", "false", "fail", "failed":
		return domain.VerdictNonCompliant, true
	case "inconclusive", "unknown", "unclear", "uncertain":
		return domain.VerdictInconclusive, true
	default:
		return "", false
	}
}
