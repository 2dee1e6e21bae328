package llm

import (
	"context"

	"BrandMentionScanner/internal/domain"
	"BrandMentionScanner/internal/ports"
)

// defaultSeedResponses are the canned demo answers handed to the first rows
// when no live API key is configured.
var defaultSeedResponses = []string{
	"Yes, Apple is one of the most popular laptop brands.",
	"Yes, Dell laptops are known for reliability.",
	"HP is a solid laptop brand with many models.",
}

// StubProvider seeds canned responses in record order, then empty strings.
type StubProvider struct {
	responses []string
	next      int
}

var _ ports.ResponseProvider = (*StubProvider)(nil)

// NewStubProvider uses the supplied responses, or the default seed set when
// nil is given.
func NewStubProvider(responses []string) *StubProvider {
	if responses == nil {
		responses = defaultSeedResponses
	}
	return &StubProvider{responses: responses}
}

// Respond hands out the next canned response until the seed set is exhausted.
func (s *StubProvider) Respond(_ context.Context, _ domain.Record) (string, error) {
	if s.next >= len(s.responses) {
		return "", nil
	}
	text := s.responses[s.next]
	s.next++
	return text, nil
}
