package evaluate

import (
	"fmt"
	"strings"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

// systemPrompt frames the model as a compliance reviewer for every request.
const systemPrompt = "You are a document compliance verification assistant specialized in product labeling " +
	"and safety standards. Your task is to analyze document images and determine whether they comply " +
	"with specific regulatory standards."

// buildPrompt creates the evaluation instruction for one standard. The model
// must answer with a single JSON object so the response can be parsed into a
// tri-state verdict.
func buildPrompt(std domain.Standard) string {
	var b strings.Builder

	b.WriteString("Analyze this image from a document and determine compliance with the following standard:\n\n")
	fmt.Fprintf(&b, "Standard: %s (%s)\n%s\n", std.Title, std.ID, std.Description)

	if len(std.Requirements) > 0 {
		b.WriteString("\nThe page should include the following information:\n")
		for i, req := range std.Requirements {
			fmt.Fprintf(&b, "%d. %s\n", i+1, req)
		}
	}

	b.WriteString(`
Respond with ONLY a valid JSON object using exactly these fields:
{
  "verdict": "compliant" | "non_compliant" | "inconclusive",
  "explanation": "<concise description of what you see on the page and why it does or does not satisfy the standard>",
  "label_text": "<the text of any relevant label on the page, or an empty string>"
}

Rules:
- "compliant" only when the page clearly satisfies the standard's requirements.
- "non_compliant" when the required label or information is present but wrong, or clearly missing from a page that should carry it.
- "inconclusive" when the image is unreadable or you cannot decide.
- Do not wrap the JSON in markdown code fences.
- No text outside the JSON object.`)

	return b.String()
}
