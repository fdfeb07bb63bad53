package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"qsdesk/internal/domain"
)

// rowSummary is the per-row context serialized into the lookup prompt.
type rowSummary struct {
	ID          string `json:"id"`
	Item        string `json:"item"`
	Description string `json:"description"`
}

// buildLookupPrompt embeds a serialized summary of every reference row and
// instructs the model to answer with strict JSON.
func buildLookupPrompt(query string, rows []domain.SpreadsheetRow) string {
	summaries := make([]rowSummary, len(rows))
	for i, row := range rows {
		summaries[i] = rowSummary{ID: row.ID, Item: row.Item, Description: row.FormulaDescription}
	}
	dataContext, _ := json.Marshal(summaries)

	var b strings.Builder
	b.WriteString("You are an expert construction arbitration analyst (Quantity Surveyor).\n")
	b.WriteString("You have access to a spreadsheet summary of a final account dispute.\n")
	fmt.Fprintf(&b, "User Query: %q\n\n", query)
	b.WriteString("Spreadsheet Data Context:\n")
	b.Write(dataContext)
	b.WriteString("\n\n")
	b.WriteString("Task: Identify which row best matches the user's query regarding calculation logic or specific items.\n")
	b.WriteString(`Return a JSON object with two keys: "rowId" (the ID of the matching row, or null if none found) and "explanation" (a brief 1-sentence explanation of why, using QS terminology).` + "\n")
	b.WriteString("Only return valid JSON. Do not include markdown code blocks.\n")
	return b.String()
}

// buildNarrativePrompt embeds the serialized Logic Log and requests a formal
// substantiation paragraph in the FIDIC register.
func buildNarrativePrompt(entries []domain.LogicLogEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line()
	}

	var b strings.Builder
	b.WriteString("You are a Senior Quantity Surveyor preparing an Expert Witness report for arbitration.\n")
	b.WriteString(`Based on the following "Logic Log" of the user's investigation into the accounts, write a concise, formal paragraph substantiating the claim.` + "\n\n")
	b.WriteString("Investigation Log:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nRequirements:\n")
	b.WriteString("- Use formal contractual language (FIDIC style).\n")
	b.WriteString("- Reference specific documents or values mentioned in the logs.\n")
	b.WriteString("- The tone should be objective and persuasive.\n")
	b.WriteString(`- Start with "Based on the forensic analysis of the accounts..."` + "\n")
	return b.String()
}

// parseMatchReply decodes the model's JSON answer. Code fences are stripped
// first since some models wrap JSON despite instructions. Any decode failure
// or an answer referencing an unknown row degrades to NoMatch.
func parseMatchReply(reply string, rows []domain.SpreadsheetRow) RowMatch {
	text := stripCodeFence(reply)
	if text == "" {
		return NoMatch()
	}

	var parsed struct {
		RowID       *string `json:"rowId"`
		Explanation string  `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return NoMatch()
	}

	explanation := strings.TrimSpace(parsed.Explanation)
	if explanation == "" {
		explanation = FallbackExplanation
	}
	if parsed.RowID == nil || *parsed.RowID == "" {
		return RowMatch{Explanation: explanation}
	}

	for _, row := range rows {
		if row.ID == *parsed.RowID {
			return RowMatch{RowID: row.ID, Explanation: explanation}
		}
	}
	// Hallucinated row id: treat as no match rather than selecting nothing.
	return RowMatch{Explanation: explanation}
}

// stripCodeFence removes a surrounding ``` or ```json fence if present.
func stripCodeFence(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
