package classify

import (
	"context"
	"regexp"
	"strings"
)

// Phrasings that try to redirect or override the assistant's instructions.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`ignore\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`disregard\s+(all\s+)?(previous|prior|instructions|the\s+above)`),
	regexp.MustCompile(`forget\s+(all\s+)?(previous|prior|instructions)`),
	regexp.MustCompile(`new\s+instructions?`),
	regexp.MustCompile(`system\s+(prompt|message|instruction)`),
	regexp.MustCompile(`act\s+as\s+(if|a|an)`),
	regexp.MustCompile(`pretend\s+(to\s+be|you\s+are)`),
	regexp.MustCompile(`you\s+are\s+now`),
	regexp.MustCompile(`from\s+now\s+on`),
	regexp.MustCompile(`override`),
	regexp.MustCompile(`bypass`),
}

// Topics that have nothing to do with candidate evaluation.
var irrelevantKeywords = []string{
	"joke", "funny", "laugh", "humor", "humour",
	"cook", "recipe", "food", "dish", "meal", "restaurant",
	"weather", "temperature", "forecast",
	"movie", "film", "netflix",
	"game", "gaming",
	"song", "music", "singer", "band",
	"sport", "football", "basketball", "soccer",
	"dating", "relationship", "marry",
	"riddle", "puzzle",
	"poem", "poetry",
	"favorite", "favourite",
	"animal", "pet",
}

// Terms indicating the query is about candidates, skills or job requirements.
var analysisTerms = []string{
	"candidate", "cv", "resume", "skill", "experience", "qualification",
	"job", "position", "role", "work", "project", "education",
	"degree", "certification", "training", "language", "technical",
	"programming", "developer", "engineer", "manager", "analyst",
	"design", "development", "team", "leadership", "professional",
	"employment", "background", "expertise", "knowledge", "proficient",
	"years", "senior", "junior", "expert", "familiar",
}

var identityQuestions = []string{
	"who are you",
	"what do you do",
	"what is your",
	"what can you do",
	"how can you help",
}

// PatternClassifier implements Classifier with regex and keyword heuristics.
// It is deliberately cheap: no network calls, no retries, deterministic.
type PatternClassifier struct {
	wordSplit *regexp.Regexp
}

// NewPatternClassifier creates the default heuristic classifier.
func NewPatternClassifier() *PatternClassifier {
	return &PatternClassifier{
		wordSplit: regexp.MustCompile(`[a-z]+`),
	}
}

// Classify applies the rejection heuristics first, then the identity check,
// and treats everything else as analyzable. The ordering is deliberate:
// an injection payload phrased as an identity question must still be rejected.
func (c *PatternClassifier) Classify(_ context.Context, query string) (Verdict, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < 3 {
		return Verdict{Category: Rejected, Reason: "query too short"}, nil
	}

	lower := strings.ToLower(trimmed)

	for _, pattern := range injectionPatterns {
		if pattern.MatchString(lower) {
			return Verdict{Category: Rejected, Reason: "instruction override attempt"}, nil
		}
	}

	words := c.wordSplit.FindAllString(lower, -1)
	for _, keyword := range irrelevantKeywords {
		if containsWord(words, keyword) {
			return Verdict{Category: Rejected, Reason: "off-topic: " + keyword}, nil
		}
	}

	for _, question := range identityQuestions {
		if strings.Contains(lower, question) {
			return Verdict{Category: General, Reason: "identity question"}, nil
		}
	}

	// Short queries without any HR-related term are most likely noise.
	if len(strings.Fields(lower)) <= 5 && !containsAnyTerm(lower, analysisTerms) {
		return Verdict{Category: Rejected, Reason: "no candidate-related terms"}, nil
	}

	return Verdict{Category: SafeAnalysis, Reason: "candidate analysis"}, nil
}

func containsWord(words []string, keyword string) bool {
	for _, w := range words {
		if w == keyword {
			return true
		}
	}
	return false
}

func containsAnyTerm(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
