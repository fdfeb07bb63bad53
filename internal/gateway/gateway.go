// Package gateway wraps the external text-generation service behind a small
// capability interface. All transport and parse failures are absorbed here:
// callers only ever see success-shaped values carrying a "not found" or
// fallback-text sentinel, never an error.
package gateway

import (
	"context"

	"qsdesk/internal/domain"
)

// RowMatch is the outcome of a natural-language row lookup. An empty RowID
// means no row matched (or the gateway failed); Explanation is always
// displayable.
type RowMatch struct {
	RowID       string `json:"rowId"`
	Explanation string `json:"explanation"`
}

// Found reports whether the lookup resolved to a row.
func (m RowMatch) Found() bool {
	return m.RowID != ""
}

// Analyst is the injected text-generation capability: resolve a free-text
// query to a spreadsheet row, and summarize the Logic Log as a formal claim
// paragraph. Implementations must never return errors to callers; failures
// degrade to the fixed fallback values.
type Analyst interface {
	ResolveQuery(ctx context.Context, query string) RowMatch
	SummarizeLog(ctx context.Context, entries []domain.LogicLogEntry) string
}

// Fallback values returned when the service is unreachable, the credential is
// missing, or the reply is unusable.
const (
	FallbackExplanation = "Could not interpret query."
	FallbackNarrative   = "Error generating claim narrative. Please try again."
	EmptyReplyNarrative = "Unable to generate narrative."
)

// NoMatch is the sentinel returned for any failed or unmatched lookup.
func NoMatch() RowMatch {
	return RowMatch{Explanation: FallbackExplanation}
}
