// Package classify gates incoming queries before any retrieval happens.
// A query is either rejected (injection attempt or off-topic), answered as a
// general identity question, or passed through to candidate analysis.
package classify

import "context"

// Category is the terminal classification of a query.
type Category string

const (
	// Rejected marks injection attempts and queries unrelated to candidate evaluation.
	Rejected Category = "rejected"
	// General marks questions about the assistant itself rather than candidates.
	General Category = "general"
	// SafeAnalysis marks genuine job-requirement or candidate questions.
	SafeAnalysis Category = "safe_analysis"
)

// Verdict is the pre-retrieval decision for a single query.
type Verdict struct {
	Category Category
	Reason   string
}

// Classifier decides how a query should be handled. Implementations must be
// pure functions of the query text and apply the precedence
// Rejected > General > SafeAnalysis.
type Classifier interface {
	Classify(ctx context.Context, query string) (Verdict, error)
}
