package agent

import "context"

// fakeModel records prompts and answers a canned text.
type fakeModel struct {
	answer  string
	err     error
	prompts []string
}

func (m *fakeModel) Complete(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.answer, m.err
}
