package service

import (
	"context"
	"sync"
)

type llmCall struct {
	operation   string
	prompt      string
	attachments []Attachment
}

type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    []llmCall
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, operation, prompt string, attachments ...Attachment) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, llmCall{operation: operation, prompt: prompt, attachments: attachments})
	if f.err != nil {
		return nil, f.err
	}
	return []byte(CleanJSON(f.response)), nil
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
