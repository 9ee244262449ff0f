package domain

// CompletionStatus distinguishes the outcomes of a language-model call.
type CompletionStatus int

const (
	CompletionOK CompletionStatus = iota
	CompletionRateLimited
	CompletionFailed
)

func (s CompletionStatus) String() string {
	switch s {
	case CompletionOK:
		return "ok"
	case CompletionRateLimited:
		return "rate_limited"
	default:
		return "failed"
	}
}

// Completion is the result of a single prompt. Text is only meaningful when
// Status is CompletionOK; Err carries the cause otherwise.
type Completion struct {
	Status CompletionStatus
	Text   string
	Err    error
}

// Succeeded wraps model output.
func Succeeded(text string) Completion {
	return Completion{Status: CompletionOK, Text: text}
}

// RateLimited reports an exhausted rate or quota.
func RateLimited(err error) Completion {
	return Completion{Status: CompletionRateLimited, Err: err}
}

// Failed reports any non-retryable failure.
func Failed(err error) Completion {
	return Completion{Status: CompletionFailed, Err: err}
}

// Verdict is the relevance classifier output.
type Verdict int

const (
	VerdictNotRelevant Verdict = iota
	VerdictRelevant
)
