package engine

import (
	"strings"

	_ "embed"

	"github.com/spigell/cv-matcher/internal/index"
)

//go:embed prompt.md
var promptTemplate string

// RefusalMessage is the fixed response for rejected queries. It is never
// produced by the generation capability.
const RefusalMessage = "No relevant CVs found for this query. " +
	"Please ask about candidate skills, experience, qualifications, or job requirements."

// UnavailableMessage is returned when the generation capability failed and no
// trustworthy analysis could be produced.
const UnavailableMessage = "Analysis is unavailable for this query. Please try again."

const identityPrompt = `You are an HR assistant specialized in CV screening and candidate evaluation.
Describe your role in 2-4 sentences: you analyze candidates' CVs, match them against job requirements,
and provide evidence-based recommendations. Do not mention any specific candidate or CV content.
Answer the question: ` + `{{QUESTION}}`

// buildAnalysisPrompt renders the grounding prompt: retrieved fragments are
// grouped under the candidate's display name so the model can attribute
// evidence, and the template instructs it to reason over that evidence only.
func buildAnalysisPrompt(question string, retrieved []index.Retrieved, registry *Registry) string {
	var context strings.Builder
	byCandidate := make(map[string][]string)
	var order []string

	for _, item := range retrieved {
		id := item.Fragment.CandidateID
		if _, seen := byCandidate[id]; !seen {
			order = append(order, id)
		}
		byCandidate[id] = append(byCandidate[id], item.Fragment.Text)
	}

	for _, id := range order {
		candidate, err := registry.Get(id)
		if err != nil {
			continue
		}
		context.WriteString("Candidate: ")
		context.WriteString(candidate.DisplayName)
		context.WriteString("\n")
		for _, text := range byCandidate[id] {
			context.WriteString("---\n")
			context.WriteString(text)
			context.WriteString("\n")
		}
		context.WriteString("\n")
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{CONTEXT}}", strings.TrimSpace(context.String()))
	prompt = strings.ReplaceAll(prompt, "{{QUESTION}}", question)
	return prompt
}

func buildIdentityPrompt(question string) string {
	return strings.ReplaceAll(identityPrompt, "{{QUESTION}}", question)
}
