// Package apiclient talks to the HireWise HTTP API. Client implements
// interview.Evaluator so a terminal front end can drive an
// interview.Controller against a remote server.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/interview"
)

// Client calls the API under baseURL, e.g. "http://localhost:8080/api".
type Client struct {
	baseURL string
	client  *http.Client
	// sessionSize caps the number of questions kept from a question set.
	sessionSize int
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      &http.Client{Timeout: timeout},
		sessionSize: interview.DefaultSessionSize,
	}
}

func (c *Client) GenerateQuestions(ctx context.Context, resumeText, jobDescription string, mode interview.Mode) (interview.QuestionSet, error) {
	body, err := c.postJSON(ctx, "generate_questions", "/interview/start", dto.StartInterviewRequest{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		Mode:           string(mode),
	})
	if err != nil {
		return nil, err
	}
	return interview.DecodeQuestionSet(mode, body, c.sessionSize)
}

func (c *Client) EvaluateAnswer(ctx context.Context, questionText, answerText string, mode interview.Mode) (interview.Evaluation, error) {
	body, err := c.postJSON(ctx, "evaluate_answer", "/interview/evaluate", dto.EvaluateAnswerRequest{
		Question:   questionText,
		UserAnswer: answerText,
		Mode:       string(mode),
	})
	if err != nil {
		return nil, err
	}
	return interview.DecodeEvaluation(mode, body)
}

// Analyze uploads a resume file for analysis.
func (c *Client) Analyze(ctx context.Context, fileName string, data []byte, jobDescription string) (*dto.ResumeAnalysisResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", filepath.Base(fileName))
	if err != nil {
		return nil, fmt.Errorf("error creating form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("error writing form file: %w", err)
	}
	if err := mw.WriteField("job_description", jobDescription); err != nil {
		return nil, fmt.Errorf("error writing form field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("error closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &buf)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	body, err := c.do(req, "analyze_resume")
	if err != nil {
		return nil, err
	}

	var resp dto.ResumeAnalysisResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperror.Malformed("analysis response", err)
	}
	return &resp, nil
}

// SaveSession stores a finished session built from the controller state.
func (c *Client) SaveSession(ctx context.Context, state interview.SessionState, elapsedSeconds int) (*dto.SessionResponse, error) {
	req := dto.SaveSessionRequest{Mode: string(state.Mode), ElapsedSeconds: elapsedSeconds}
	for _, r := range state.Results {
		eval, err := json.Marshal(r.Evaluation)
		if err != nil {
			return nil, fmt.Errorf("error encoding evaluation: %w", err)
		}
		req.Results = append(req.Results, dto.SessionResultPayload{
			Index:      r.Index,
			Question:   r.Question,
			Answer:     r.Answer,
			Evaluation: eval,
		})
	}

	body, err := c.postJSON(ctx, "save_session", "/interview/sessions", req)
	if err != nil {
		return nil, err
	}
	var resp dto.SessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperror.Malformed("session response", err)
	}
	return &resp, nil
}

// ListSessions returns recent sessions, optionally of one mode.
func (c *Client) ListSessions(ctx context.Context, mode interview.Mode, limit int) ([]dto.SessionSummaryResponse, error) {
	q := url.Values{}
	if mode != "" {
		q.Set("mode", string(mode))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	u := c.baseURL + "/interview/sessions"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	body, err := c.do(req, "list_sessions")
	if err != nil {
		return nil, err
	}
	var resp []dto.SessionSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperror.Malformed("session list", err)
	}
	return resp, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, op)
}

// do sends req and returns the body of a 2xx response. A 400 becomes a
// ValidationError carrying the server's message; anything else an
// UpstreamError.
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperror.Upstream(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Upstream(op, fmt.Errorf("error reading response: %w", err))
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	msg := strings.TrimSpace(string(body))
	var errResp dto.ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		msg = errResp.Error
	}
	if resp.StatusCode == http.StatusBadRequest {
		return nil, apperror.Validation("%s", msg)
	}
	return nil, apperror.Upstream(op, fmt.Errorf("status %d: %s", resp.StatusCode, msg))
}
