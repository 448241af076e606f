// Package suggest asks a Gemini model to propose category and
// subcategory labels for transactions the sheet left unlabeled.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when the caller does not pick one.
const DefaultModel = "gemini-2.5-flash"

// Suggestion is one proposed labeling for a transaction description.
type Suggestion struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

// Suggester wraps a Gemini client with the category taxonomy the model
// must pick from.
type Suggester struct {
	client     *genai.Client
	model      string
	categories map[string][]string // category -> subcategories
}

// New creates a Suggester. The client reads its API key from the
// environment, the way the genai SDK does.
func New(ctx context.Context, model string, categories map[string][]string) (*Suggester, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Suggester{client: client, model: model, categories: categories}, nil
}

// taxonomyPrompt lists the allowed labels so the model cannot invent new
// ones.
func (s *Suggester) taxonomyPrompt() string {
	var b strings.Builder
	b.WriteString("Allowed categories and their subcategories:\n")
	for cat, subs := range s.categories {
		fmt.Fprintf(&b, "- %s: %s\n", cat, strings.Join(subs, ", "))
	}
	return b.String()
}

const instructions = "You are a personal finance categorizer.\n\n" +
	"Task:\n" +
	"- Assign each transaction description below a category and subcategory.\n" +
	"- Use ONLY labels from the allowed taxonomy.\n" +
	"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
	"- Output a JSON array of objects with fields \"description\", \"category\", \"subcategory\".\n" +
	"- Do NOT wrap the response in code fences.\n" +
	"Output must begin with \"[\" and end with \"]\".\n"

// Suggest proposes labels for the given descriptions. Descriptions the
// model skipped are simply absent from the result.
func (s *Suggester) Suggest(ctx context.Context, descriptions []string) ([]Suggestion, error) {
	if len(descriptions) == 0 {
		return nil, nil
	}
	prompt := instructions + "\n" + s.taxonomyPrompt() + "\nTransactions:\n"
	for _, d := range descriptions {
		prompt += "- " + d + "\n"
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}
	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var out []Suggestion
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("unmarshaling suggestions: %w\nraw response: %s", err, raw)
	}
	return out, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk the model
// sometimes emits despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
