package usecase

import (
	"context"
	"log/slog"
	"strings"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

// Classify maps free-text model output to a verdict. Anything that does not
// contain "yes" (case-insensitive) is not relevant.
func Classify(text string) domain.Verdict {
	if strings.Contains(strings.ToLower(text), "yes") {
		return domain.VerdictRelevant
	}
	return domain.VerdictNotRelevant
}

// RelevanceFilter asks the model for a Yes/No newsworthiness judgement and
// fails closed.
type RelevanceFilter struct {
	llm      ports.Completer
	classify func(string) domain.Verdict
	logger   *slog.Logger
}

var _ ports.RelevanceFilter = (*RelevanceFilter)(nil)

// NewRelevanceFilter wires the completer with the default classifier.
func NewRelevanceFilter(llm ports.Completer, log *slog.Logger) *RelevanceFilter {
	return &RelevanceFilter{llm: llm, classify: Classify, logger: log}
}

// IsRelevant returns false on any completion failure.
func (f *RelevanceFilter) IsRelevant(ctx context.Context, title, summary string) bool {
	if f.llm == nil {
		return false
	}

	result := f.llm.Complete(ctx, relevancePrompt(title, summary))
	if result.Status != domain.CompletionOK {
		logWarn(f.logger, "could not determine relevance", "title", title, "status", result.Status.String(), "error", result.Err)
		return false
	}

	decision := strings.TrimSpace(result.Text)
	verdict := f.classify(decision)
	logDebug(f.logger, "relevance decision", "title", title, "decision", decision)
	return verdict == domain.VerdictRelevant
}
