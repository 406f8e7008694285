// Package stub provides a deterministic AI client for development and tests.
package stub

import (
	"strings"

	"github.com/sarensabesk/HireAI/internal/domain"
)

// Client returns canned responses shaped after the prompt it receives, so
// the full pipeline can run without a provider key.
type Client struct{}

func New() *Client { return &Client{} }

func (c *Client) Generate(_ domain.Context, prompt string) (string, error) {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "json array"):
		return `["communication", "problem solving", "teamwork"]`, nil
	case strings.Contains(p, "comma-separated"):
		return "collaboration, documentation, code review", nil
	case strings.Contains(p, "subject line"):
		return `{"subject_line": "Quick question about your team", "email_body": "Hello,\n\nI came across your opening and believe my background is a strong fit. I would welcome a short conversation.\n\nBest regards"}`, nil
	case strings.Contains(p, "interview"):
		return `{"questions": [{"question": "Tell me about a challenging project.", "guidance": "Structure the answer around situation, action and result."}]}`, nil
	case strings.Contains(p, "roadmap"):
		return `{"phases": [{"title": "Foundations", "duration": "2 weeks", "items": ["Review core concepts", "Build a small project"]}]}`, nil
	default:
		return "Based on the materials provided, focus on highlighting measurable outcomes and aligning your summary with the role requirements.", nil
	}
}
