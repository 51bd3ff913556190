package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/cv-matcher/internal/classify"
)

// Tier is the coarse relevance bucket assigned to a candidate for one query.
// Higher values sort first.
type Tier int

const (
	TierNone Tier = iota
	TierLow
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "HIGH"
	case TierMedium:
		return "MEDIUM"
	case TierLow:
		return "LOW"
	default:
		return "NONE"
	}
}

func parseTier(s string) (Tier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return TierHigh, nil
	case "MEDIUM":
		return TierMedium, nil
	case "LOW":
		return TierLow, nil
	case "NONE":
		return TierNone, nil
	default:
		return TierNone, fmt.Errorf("unknown tier %q", s)
	}
}

// MatchResult is the per-candidate outcome of one analysis query.
type MatchResult struct {
	Candidate     *Candidate
	Tier          Tier
	Quotes        []string
	FragmentCount int
}

// AnswerKind discriminates the possible outcomes of Engine.Answer.
type AnswerKind string

const (
	// KindAnalysis carries ranked, evidence-backed match results.
	KindAnalysis AnswerKind = "analysis"
	// KindGeneral carries an identity description, no candidate content.
	KindGeneral AnswerKind = "general"
	// KindRefusal carries the fixed refusal message for rejected queries.
	KindRefusal AnswerKind = "refusal"
	// KindUnavailable is returned when the generation capability failed;
	// no partial or garbled data is ever surfaced.
	KindUnavailable AnswerKind = "unavailable"
)

// Answer is the single return type of Engine.Answer. Query-time capability
// failures are folded into Kind and Err rather than escaping as raw errors.
type Answer struct {
	Kind    AnswerKind
	Verdict classify.Verdict
	// Text holds the refusal message, identity description, or the generic
	// unavailable message depending on Kind.
	Text string
	// Results is populated for KindAnalysis only, sorted by descending tier,
	// then descending fragment count, then registry insertion order.
	Results []MatchResult
	// Err carries ErrGenerationFormat or ErrGenerationTimeout for
	// KindUnavailable answers.
	Err error
}

// sortResults orders results by tier, fragment count, then the candidate's
// position in the registry.
func sortResults(results []MatchResult, position map[string]int) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Tier != results[j].Tier {
			return results[i].Tier > results[j].Tier
		}
		if results[i].FragmentCount != results[j].FragmentCount {
			return results[i].FragmentCount > results[j].FragmentCount
		}
		return position[results[i].Candidate.ID] < position[results[j].Candidate.ID]
	})
}
