package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/hirewise/config"
	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/event"
	domain "github.com/lshigami/hirewise/internal/interview"
	"github.com/lshigami/hirewise/internal/repository"
	"github.com/lshigami/hirewise/internal/service"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) GenerateJSON(ctx context.Context, operation, prompt string, attachments ...service.Attachment) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.response), nil
}

func newRouter(llm service.GeminiLLMService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Interview.QuestionCount = 5
	ctrl := NewInterviewController(
		service.NewInterviewService(llm, cfg),
		service.NewInterviewHistoryService(repository.NewMemoryInterviewSessionRepository(), event.NoopPublisher{}),
	)
	r := gin.New()
	ctrl.RegisterRoutes(r.Group("/api"))
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body %q: %v", w.Body.String(), err)
	}
	return resp.Error
}

func TestModes(t *testing.T) {
	w := do(newRouter(&stubLLM{}), http.MethodGet, "/api/interview/modes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var modes []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &modes); err != nil || len(modes) != 4 {
		t.Errorf("modes = %s (%v)", w.Body.String(), err)
	}
}

func TestStart(t *testing.T) {
	llm := &stubLLM{response: `{"questions":[{"type":"communication","text":"Tell me about a conflict.","difficulty":"medium","context":"Teamwork"}]}`}
	tests := []struct {
		name    string
		body    any
		status  int
		wantErr string
	}{
		{"ok", dto.StartInterviewRequest{ResumeText: "r", JobDescription: "jd", Mode: "communication"}, http.StatusOK, ""},
		{"missing mode", dto.StartInterviewRequest{ResumeText: "r", JobDescription: "jd"}, http.StatusBadRequest, "resume_text, job_description, and mode are required."},
		{"unknown mode", dto.StartInterviewRequest{ResumeText: "r", JobDescription: "jd", Mode: "karaoke"}, http.StatusBadRequest, ""},
		{"not json", "nope", http.StatusBadRequest, "resume_text, job_description, and mode are required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(llm), http.MethodPost, "/api/interview/start", tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.wantErr != "" && errorOf(t, w) != tt.wantErr {
				t.Errorf("error = %q, want %q", errorOf(t, w), tt.wantErr)
			}
			if tt.status == http.StatusOK {
				var resp dto.StartInterviewResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || len(resp.Questions) != 1 {
					t.Errorf("resp = %s", w.Body.String())
				}
			}
		})
	}
}

func TestStartUpstreamFailure(t *testing.T) {
	r := newRouter(&stubLLM{err: apperror.Upstream("generate_questions", errors.New("quota exceeded"))})
	w := do(r, http.MethodPost, "/api/interview/start", dto.StartInterviewRequest{ResumeText: "r", JobDescription: "jd", Mode: "discussion"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if got := errorOf(t, w); got != "Failed to generate interview questions." {
		t.Errorf("error = %q", got)
	}
}

func TestEvaluate(t *testing.T) {
	llm := &stubLLM{response: `{"structure_score":8,"relevance_score":7,"clarity_score":9,"overall_score":8,"feedback":"Clear STAR structure."}`}
	r := newRouter(llm)

	w := do(r, http.MethodPost, "/api/interview/evaluate", dto.EvaluateAnswerRequest{Question: "q", UserAnswer: "a"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var eval map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &eval); err != nil || eval["overall_score"] != float64(8) {
		t.Errorf("eval = %s", w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/interview/evaluate", dto.EvaluateAnswerRequest{Question: "q", UserAnswer: "a", Mode: "behavioral"})
	if w.Code != http.StatusOK {
		t.Errorf("unrecognized mode: status = %d (%s)", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/interview/evaluate", dto.EvaluateAnswerRequest{Question: "q"})
	if w.Code != http.StatusBadRequest || errorOf(t, w) != "question and user_answer are required." {
		t.Errorf("missing answer: %d %s", w.Code, w.Body.String())
	}
}

func TestEvaluateMalformed(t *testing.T) {
	r := newRouter(&stubLLM{response: `{"overall_score":8}`})
	w := do(r, http.MethodPost, "/api/interview/evaluate", dto.EvaluateAnswerRequest{Question: "q", UserAnswer: "a", Mode: "communication"})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
}

func TestSessionHistory(t *testing.T) {
	r := newRouter(&stubLLM{})
	req := dto.SaveSessionRequest{Mode: "problem_solving", ElapsedSeconds: 90}
	for i, score := range []int{4, 5} {
		req.Results = append(req.Results, dto.SessionResultPayload{
			Index:    i,
			Question: dtoQuestion(i),
			Answer:   "Use a hash map.",
			Evaluation: json.RawMessage(fmt.Sprintf(
				`{"technical_score":%d,"approach_score":%d,"completeness_score":%d,"overall_score":%d,"feedback":"ok"}`, score, score, score, score)),
		})
	}

	w := do(r, http.MethodPost, "/api/interview/sessions", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("save status = %d (%s)", w.Code, w.Body.String())
	}
	var saved dto.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatal(err)
	}
	if saved.AverageOverallScore != 5 || saved.Rating != "fair" {
		t.Errorf("saved = %+v", saved.SessionSummaryResponse)
	}

	w = do(r, http.MethodGet, "/api/interview/sessions/"+saved.ID, nil)
	if w.Code != http.StatusOK {
		t.Errorf("get status = %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/interview/sessions?mode=problem_solving&limit=5", nil)
	var list []dto.SessionSummaryResponse
	if w.Code != http.StatusOK || json.Unmarshal(w.Body.Bytes(), &list) != nil || len(list) != 1 {
		t.Errorf("list = %d %s", w.Code, w.Body.String())
	}

	for path, status := range map[string]int{
		"/api/interview/sessions/not-a-uuid":                           http.StatusBadRequest,
		"/api/interview/sessions/5b0c3c5e-3c1e-4d7e-9a59-0c9f6f0c2b4e": http.StatusNotFound,
		"/api/interview/sessions?limit=x":                              http.StatusBadRequest,
		"/api/interview/sessions?mode=karaoke":                         http.StatusBadRequest,
	} {
		if w := do(r, http.MethodGet, path, nil); w.Code != status {
			t.Errorf("GET %s = %d, want %d", path, w.Code, status)
		}
	}

	if w := do(r, http.MethodPost, "/api/interview/sessions", dto.SaveSessionRequest{Mode: "discussion"}); w.Code != http.StatusBadRequest {
		t.Errorf("empty session status = %d", w.Code)
	}
}

func dtoQuestion(i int) domain.Question {
	return domain.Question{Type: domain.ModeProblemSolving, Text: fmt.Sprintf("Problem %d", i+1), Difficulty: domain.DifficultyHard}
}
