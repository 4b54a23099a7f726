package services

import (
	"context"
	"sync"
)

// stubGenerator replays a canned reply and records every request.
type stubGenerator struct {
	mu        sync.Mutex
	text      string
	err       error
	panicWith interface{}
	block     bool
	requests  []StructuredRequest
}

func (s *stubGenerator) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	text, err, panicWith, block := s.text, s.err, s.panicWith, s.block
	s.mu.Unlock()

	if panicWith != nil {
		panic(panicWith)
	}
	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return text, err
}

func (s *stubGenerator) lastRequest() StructuredRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}
