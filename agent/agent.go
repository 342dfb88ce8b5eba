// Package agent contains the generative AI collaborators of invest: the
// investment Planner and the NewsAnalyst.
//
// Both are built on an Expert, a Gemini chat with a system instruction and
// optionally a Library of tools it can call.
package agent

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// ErrInvalidRequest is returned when a request to a collaborator is
// incomplete or inconsistent. Nothing has been sent to the model.
var ErrInvalidRequest = errors.New("invalid request")

// Completer answers a single prompt with text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// consultation asks each prompt to a fresh chat with an expert, so that
// prompts do not share any history.
type consultation struct {
	client *genai.Client
	expert *Expert
}

// Consult returns a Completer asking the expert.
func Consult(client *genai.Client, expert *Expert) Completer {
	return consultation{client: client, expert: expert}
}

func (c consultation) Complete(ctx context.Context, prompt string) (string, error) {
	e := *c.expert
	if err := e.Start(ctx, c.client); err != nil {
		return "", err
	}
	content, err := e.Ask(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", err
	}
	return Text(content), nil
}

// Text concatenates the text parts of a content.
func Text(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}

func ptr[T any](v T) *T { return &v }
