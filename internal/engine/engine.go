// Package engine implements the CV matching core: it ingests résumé
// documents into a per-instance registry and vector index, classifies
// incoming queries, and turns retrieved evidence into a ranked,
// quote-backed answer via the generation capability.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/classify"
	"github.com/spigell/cv-matcher/internal/index"
	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/names"
)

// Document is one résumé supplied to Build: the extracted raw text plus the
// filename it came from. Text extraction itself happens outside the engine.
type Document struct {
	Filename string
	Text     string
}

// Deps aggregates the external capabilities the engine consumes.
type Deps struct {
	Generator  ai.Generator
	Embedder   ai.Embedder
	Classifier classify.Classifier
	Logger     *zap.Logger
}

// Engine matches candidates against free-text job requirements. After Build
// completes the registry and index are read-only, so concurrent Answer calls
// are safe.
type Engine struct {
	cfg        Config
	generator  ai.Generator
	classifier classify.Classifier
	logger     *zap.Logger

	registry *Registry
	index    *index.Index
	position map[string]int
}

// Build ingests the documents and returns a fully constructed engine.
// Any ingestion error is fatal: no partially built engine is ever returned.
func Build(ctx context.Context, cfg Config, deps Deps, documents []Document) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if deps.Generator == nil {
		return nil, fmt.Errorf("%w: generator capability is required", ErrInvalidConfig)
	}
	if deps.Embedder == nil {
		return nil, fmt.Errorf("%w: embedder capability is required", ErrInvalidConfig)
	}
	if deps.Classifier == nil {
		deps.Classifier = classify.NewCached(classify.NewPatternClassifier(), 0)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	if len(documents) < cfg.MinDocuments {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewDocuments, len(documents), cfg.MinDocuments)
	}
	if len(documents) > cfg.MaxDocuments {
		return nil, fmt.Errorf("%w: got %d, allowed at most %d", ErrTooManyDocuments, len(documents), cfg.MaxDocuments)
	}

	registry := NewRegistry()
	var fragments []index.Fragment

	for _, doc := range documents {
		id := SanitizeFilename(doc.Filename)
		displayName := names.Extract(doc.Text, doc.Filename)

		candidate, err := registry.Register(id, displayName, doc.Text)
		if err != nil {
			return nil, fmt.Errorf("register %q: %w", doc.Filename, err)
		}

		chunks := SplitText(doc.Text, cfg.ChunkSize, cfg.ChunkOverlap)
		for i, chunk := range chunks {
			fragments = append(fragments, index.Fragment{
				CandidateID: candidate.ID,
				Sequence:    i,
				Text:        chunk,
			})
		}

		deps.Logger.Debug("document ingested",
			zap.String("candidate_id", candidate.ID),
			zap.String("display_name", candidate.DisplayName),
			zap.Int("fragments", len(chunks)),
		)
	}

	ix := index.New(deps.Embedder)
	if err := ix.Add(ctx, fragments); err != nil {
		return nil, fmt.Errorf("index documents: %w", err)
	}

	position := make(map[string]int, registry.Len())
	for i, candidate := range registry.List() {
		position[candidate.ID] = i
	}

	deps.Logger.Info("engine built",
		zap.Int("candidates", registry.Len()),
		zap.Int("fragments", ix.Len()),
		zap.String("embedding_model", deps.Embedder.Model()),
		zap.String("generation_model", deps.Generator.Model()),
	)

	return &Engine{
		cfg:        cfg,
		generator:  deps.Generator,
		classifier: deps.Classifier,
		logger:     deps.Logger,
		registry:   registry,
		index:      ix,
		position:   position,
	}, nil
}

// CandidateCount returns the number of ingested candidates.
func (e *Engine) CandidateCount() int { return e.registry.Len() }

// FragmentCount returns the number of indexed fragments.
func (e *Engine) FragmentCount() int { return e.index.Len() }

// Candidates returns the ingested candidates in insertion order.
func (e *Engine) Candidates() []*Candidate { return e.registry.List() }

// Answer classifies the query and produces one of the four answer kinds.
// Capability failures are folded into an unavailable answer; a raw error is
// returned only for programmer mistakes such as querying an empty index.
func (e *Engine) Answer(ctx context.Context, query string) (*Answer, error) {
	verdict, err := e.classifier.Classify(ctx, query)
	if err != nil {
		// Fail closed: an undecidable query must not reach the generator.
		e.logger.Warn("classification failed, refusing query", zap.Error(err))
		verdict = classify.Verdict{Category: classify.Rejected, Reason: "classification failed"}
	}

	e.logger.Debug("query classified",
		zap.String("category", string(verdict.Category)),
		zap.String("reason", verdict.Reason),
		zap.String("query_preview", logger.TruncateForLog(query, 120)),
	)

	switch verdict.Category {
	case classify.Rejected:
		return &Answer{Kind: KindRefusal, Verdict: verdict, Text: RefusalMessage}, nil
	case classify.General:
		return e.answerGeneral(ctx, verdict, query), nil
	default:
		return e.answerAnalysis(ctx, verdict, query)
	}
}

func (e *Engine) answerGeneral(ctx context.Context, verdict classify.Verdict, query string) *Answer {
	text, err := e.generate(ctx, buildIdentityPrompt(query))
	if err != nil {
		return e.unavailable(verdict, err)
	}
	return &Answer{Kind: KindGeneral, Verdict: verdict, Text: text}
}

func (e *Engine) answerAnalysis(ctx context.Context, verdict classify.Verdict, query string) (*Answer, error) {
	retrieved, err := e.index.Query(ctx, query, e.cfg.RetrieverK)
	if err != nil {
		if errors.Is(err, index.ErrEmptyIndex) || errors.Is(err, index.ErrStaleIndex) {
			return nil, err
		}
		return e.unavailable(verdict, err), nil
	}

	fragmentCount := make(map[string]int)
	evidence := make(map[string]string)
	for _, item := range retrieved {
		id := item.Fragment.CandidateID
		fragmentCount[id]++
		evidence[id] += " " + item.Fragment.Text
	}

	prompt := buildAnalysisPrompt(query, retrieved, e.registry)

	e.logger.Debug("generation request",
		zap.Int("retrieved_fragments", len(retrieved)),
		zap.Int("prompt_length", len(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, 200)),
	)

	raw, err := e.generate(ctx, prompt)
	if err != nil {
		return e.unavailable(verdict, err), nil
	}

	e.logger.Debug("generation response",
		zap.Int("response_length", len(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, 200)),
	)

	entries, err := decodeRanking(raw)
	if err != nil {
		return e.unavailable(verdict, err), nil
	}

	results, err := e.assembleResults(entries, fragmentCount, evidence)
	if err != nil {
		return e.unavailable(verdict, err), nil
	}

	return &Answer{Kind: KindAnalysis, Verdict: verdict, Results: results}, nil
}

// assembleResults merges the decoded ranking with the retrieval counts.
// Every registered candidate appears exactly once: ranked ones with their
// tier, unretrieved ones with tier NONE. Quotes that do not occur verbatim in
// the candidate's retrieved fragments are dropped.
func (e *Engine) assembleResults(entries []rankedCandidate, fragmentCount map[string]int, evidence map[string]string) ([]MatchResult, error) {
	byName := make(map[string]*Candidate, e.registry.Len())
	for _, candidate := range e.registry.List() {
		byName[candidate.DisplayName] = candidate
	}

	tiers := make(map[string]Tier, len(entries))
	quotes := make(map[string][]string, len(entries))

	for _, entry := range entries {
		candidate, ok := byName[strings.TrimSpace(entry.Name)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown candidate %q in ranking", ErrGenerationFormat, entry.Name)
		}

		tier, err := parseTier(entry.Tier)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerationFormat, err)
		}

		tiers[candidate.ID] = tier

		haystack := normalizeSpace(evidence[candidate.ID])
		for _, quote := range entry.Quotes {
			needle := normalizeSpace(quote)
			if needle == "" || !strings.Contains(haystack, needle) {
				e.logger.Warn("dropping fabricated quote",
					zap.String("candidate_id", candidate.ID),
					zap.String("quote_preview", logger.TruncateForLog(quote, 120)),
				)
				continue
			}
			quotes[candidate.ID] = append(quotes[candidate.ID], quote)
		}
	}

	results := make([]MatchResult, 0, e.registry.Len())
	for _, candidate := range e.registry.List() {
		count := fragmentCount[candidate.ID]
		tier := tiers[candidate.ID]
		if count == 0 {
			// Absence from retrieval is informative, not an error.
			tier = TierNone
		}

		result := MatchResult{
			Candidate:     candidate,
			Tier:          tier,
			FragmentCount: count,
		}
		if count > 0 {
			result.Quotes = quotes[candidate.ID]
		}
		results = append(results, result)
	}

	sortResults(results, e.position)
	return results, nil
}

func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	if e.cfg.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.GenerationTimeout)
		defer cancel()
	}

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
		}
		return "", err
	}

	return raw, nil
}

func (e *Engine) unavailable(verdict classify.Verdict, err error) *Answer {
	e.logger.Warn("analysis unavailable", zap.Error(err))
	return &Answer{
		Kind:    KindUnavailable,
		Verdict: verdict,
		Text:    UnavailableMessage,
		Err:     err,
	}
}

// SanitizeFilename reduces a filename to the stable candidate id: anything
// outside letters, digits, dot, underscore and dash is removed, spaces become
// underscores. Two uploads sanitizing to the same id are duplicates.
func SanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
