// Package report turns retrieved context plus a question into a drafted
// report via a hosted chat model. Prompt text and model choice are supplied
// by the caller's configuration, never baked in here.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/adviserhq/adviser/llm"
	"github.com/adviserhq/adviser/retrieval"
)

// Report is the assembled model output with its provenance.
type Report struct {
	Question string    `json:"question"`
	Body     string    `json:"body"`
	Sources  int       `json:"sources"`
	Usage    llm.Usage `json:"usage"`
}

// Assembler drafts reports from retrieved context.
type Assembler struct {
	client llm.Client
	model  string
	system string
}

// New creates an Assembler. The system prompt frames the report structure and
// comes from configuration.
func New(client llm.Client, model, system string) *Assembler {
	return &Assembler{client: client, model: model, system: system}
}

// Assemble builds the user prompt from the question and the retrieved context
// and asks the model for the report body. An empty context is allowed; the
// model is told when no source material was found.
func (a *Assembler) Assemble(ctx context.Context, question string, rctx retrieval.Context) (*Report, error) {
	if a.client == nil {
		return nil, fmt.Errorf("no chat client configured")
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question")
	}

	resp, err := a.client.Chat(ctx, a.model, a.system, buildPrompt(question, rctx))
	if err != nil {
		return nil, fmt.Errorf("draft report: %w", err)
	}

	return &Report{
		Question: question,
		Body:     resp.Content,
		Sources:  rctx.Count,
		Usage:    resp.Usage,
	}, nil
}

func buildPrompt(question string, rctx retrieval.Context) string {
	var sb strings.Builder
	sb.WriteString("Question:\n")
	sb.WriteString(question)
	sb.WriteString("\n\n")

	if rctx.Count == 0 {
		sb.WriteString("No source material was retrieved for this question.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Source material (%d passages):\n\n", rctx.Count)
	sb.WriteString(rctx.Joined)
	sb.WriteString("\n")
	return sb.String()
}
