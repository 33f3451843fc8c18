package services

import (
	"context"
	"strings"
	"sync"
)

type stubGenerator struct {
	mu         sync.Mutex
	responses  map[string]string
	response   string
	err        error
	calls      int
	lastPrompt string
	lastParams GenerationParams
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string, params GenerationParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.lastPrompt = prompt
	s.lastParams = params
	if s.err != nil {
		return "", s.err
	}
	for marker, response := range s.responses {
		if strings.Contains(prompt, marker) {
			return response, nil
		}
	}
	return s.response, nil
}

func (s *stubGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubEmbedder struct {
	vector   []float64
	err      error
	lastText string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	s.lastText = text
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}
