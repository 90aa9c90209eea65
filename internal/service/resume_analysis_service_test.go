package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/cache"
	"github.com/lshigami/hirewise/internal/event"
	"github.com/lshigami/hirewise/internal/repository"
	"github.com/lshigami/hirewise/internal/storage"
)

const analysisResponse = "```json\n" + `{
  "ats_score": 72.6,
  "keyword_score": 64,
  "format_score": 120,
  "experience_score": 70,
  "skills_score": 58,
  "missing_keywords": ["Kubernetes", "gRPC"],
  "section_feedback": {"summary": "Concise.", "experience": "Quantify impact.", "skills": "Add cloud.", "education": "Fine."},
  "recommendations": [{"priority": "HIGH", "title": "Add Kubernetes", "description": "Mention cluster work."}],
  "summary_feedback": "Solid backend resume.",
  "extracted_resume_text": "Jane Doe\nGo engineer"
}` + "\n```"

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*cache.CachedAnalysis
}

func (c *memoryCache) Get(_ context.Context, key string) (*cache.CachedAnalysis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, a *cache.CachedAnalysis) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]*cache.CachedAnalysis)
	}
	c.entries[key] = a
	return nil
}

func (c *memoryCache) Close() error { return nil }

type memoryStore struct {
	objects map[string][]byte
}

func (s *memoryStore) Put(_ context.Context, key, _ string, data []byte) (bool, error) {
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	s.objects[key] = data
	return true, nil
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

type analysisFixture struct {
	llm       *fakeLLM
	cache     *memoryCache
	store     *memoryStore
	publisher *event.Recorder
	svc       ResumeAnalysisService
}

func newAnalysisFixture(response string) *analysisFixture {
	f := &analysisFixture{
		llm:       &fakeLLM{response: response},
		cache:     &memoryCache{},
		store:     &memoryStore{},
		publisher: &event.Recorder{},
	}
	f.svc = NewResumeAnalysisService(f.llm, NewDocumentExtractor(), repository.NewMemoryResumeAnalysisRepository(), f.cache, f.store, f.publisher)
	return f
}

var samplePDF = []byte("%PDF-1.4 sample resume bytes")

func TestAnalyzeResume(t *testing.T) {
	f := newAnalysisFixture(analysisResponse)
	ctx := context.Background()

	resp, err := f.svc.AnalyzeResume(ctx, "Jane_Doe.pdf", samplePDF, "Senior Go engineer")
	if err != nil {
		t.Fatalf("AnalyzeResume: %v", err)
	}
	if resp.ID == "" || resp.Cached {
		t.Errorf("resp = %+v", resp)
	}
	if resp.ATSScore != 73 || resp.FormatScore != 100 {
		t.Errorf("scores not rounded and clamped: ats %v format %v", resp.ATSScore, resp.FormatScore)
	}
	if resp.Recommendations[0].Priority != "high" {
		t.Errorf("priority = %q", resp.Recommendations[0].Priority)
	}
	if resp.ExtractedResumeText != "Jane Doe\nGo engineer" {
		t.Errorf("extracted text = %q", resp.ExtractedResumeText)
	}

	call := f.llm.calls[0]
	if len(call.attachments) != 1 || call.attachments[0].MIMEType != "application/pdf" {
		t.Errorf("pdf not attached: %+v", call.attachments)
	}
	if len(f.store.objects) != 1 {
		t.Errorf("stored objects = %d, want 1", len(f.store.objects))
	}
	if events := f.publisher.Events(); len(events) != 1 || events[0].Type != event.ResumeAnalyzed {
		t.Errorf("events = %+v", events)
	}

	again, err := f.svc.AnalyzeResume(ctx, "Jane_Doe.pdf", samplePDF, "Senior Go engineer")
	if err != nil {
		t.Fatalf("second AnalyzeResume: %v", err)
	}
	if !again.Cached || again.ID != resp.ID || f.llm.callCount() != 1 {
		t.Errorf("second analysis not served from cache: cached %v calls %d", again.Cached, f.llm.callCount())
	}

	file, err := f.svc.GetResumeFile(ctx, resp.ID)
	if err != nil {
		t.Fatalf("GetResumeFile: %v", err)
	}
	if string(file.Data) != string(samplePDF) || file.ContentType != "application/pdf" || file.FileName != "Jane_Doe.pdf" {
		t.Errorf("file = %s %s", file.FileName, file.ContentType)
	}

	stored, err := f.svc.GetAnalysis(ctx, resp.ID)
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if stored.SectionFeedback.Experience != "Quantify impact." || len(stored.MissingKeywords) != 2 || stored.ATSScore != 73 {
		t.Errorf("stored = %+v", stored)
	}
}

func TestAnalyzeResumeValidation(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
		jd       string
	}{
		{"missing job description", "cv.pdf", samplePDF, "  "},
		{"missing file", "cv.pdf", nil, "jd"},
		{"unsupported type", "cv.txt", []byte("plain text"), "jd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAnalysisFixture(analysisResponse)
			_, err := f.svc.AnalyzeResume(context.Background(), tt.fileName, tt.data, tt.jd)
			if !apperror.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if f.llm.callCount() != 0 {
				t.Error("model called for invalid input")
			}
		})
	}
}

func TestAnalyzeResumeMalformed(t *testing.T) {
	f := newAnalysisFixture(`{"ats_score": 70, "summary_feedback": "x"}`)
	_, err := f.svc.AnalyzeResume(context.Background(), "cv.pdf", samplePDF, "jd")
	if !errors.Is(err, apperror.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
	if len(f.publisher.Events()) != 0 || len(f.store.objects) != 0 {
		t.Error("side effects ran for a failed analysis")
	}
}

func TestGetAnalysisErrors(t *testing.T) {
	f := newAnalysisFixture(analysisResponse)
	if _, err := f.svc.GetAnalysis(context.Background(), "not-a-uuid"); !apperror.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
	if _, err := f.svc.GetAnalysis(context.Background(), "5b0c3c5e-3c1e-4d7e-9a59-0c9f6f0c2b4e"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetResumeFileWithoutStorage(t *testing.T) {
	svc := NewResumeAnalysisService(&fakeLLM{response: analysisResponse}, NewDocumentExtractor(),
		repository.NewMemoryResumeAnalysisRepository(), cache.NoopAnalysisCache{}, storage.NoopResumeStore{}, event.NoopPublisher{})
	resp, err := svc.AnalyzeResume(context.Background(), "cv.pdf", samplePDF, "jd")
	if err != nil {
		t.Fatalf("AnalyzeResume: %v", err)
	}
	if _, err := svc.GetResumeFile(context.Background(), resp.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

var _ storage.ResumeStore = (*memoryStore)(nil)
