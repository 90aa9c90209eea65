package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/interview"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/interview/start", func(w http.ResponseWriter, r *http.Request) {
		var req dto.StartInterviewRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ResumeText == "" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"resume_text, job_description, and mode are required."}`)
			return
		}
		io.WriteString(w, `{"mode":"pronunciation","questions":[
			{"type":"pronunciation","text":"Read: The quick brown fox.","difficulty":"easy","context":"Stress quick"},
			{"type":"pronunciation","text":"Read: Thirty three thieves.","difficulty":"hard"}]}`)
	})
	mux.HandleFunc("/api/interview/evaluate", func(w http.ResponseWriter, r *http.Request) {
		var req dto.EvaluateAnswerRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Mode != "pronunciation" {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error":"Failed to evaluate answer."}`)
			return
		}
		io.WriteString(w, `{"pronunciation_score":7,"clarity_score":8,"content_score":9,"overall_score":8,"feedback":"Good pace."}`)
	})
	mux.HandleFunc("/api/interview/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			if r.URL.Query().Get("mode") != "pronunciation" || r.URL.Query().Get("limit") != "3" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			io.WriteString(w, `[{"id":"s1","mode":"pronunciation","question_count":1,"average_overall_score":8,"rating":"strong"}]`)
			return
		}
		var req dto.SaveSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Results) != 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dto.SessionResponse{SessionSummaryResponse: dto.SessionSummaryResponse{
			ID: "s1", Mode: req.Mode, QuestionCount: 1, AverageOverallScore: 8, ElapsedSeconds: req.ElapsedSeconds,
		}})
	})
	mux.HandleFunc("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("resume")
		if err != nil || r.FormValue("job_description") == "" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"Resume file and job description are required."}`)
			return
		}
		defer file.Close()
		json.NewEncoder(w).Encode(dto.ResumeAnalysisResponse{ID: "a1", FileName: header.Filename,
			ResumeAnalysisResult: dto.ResumeAnalysisResult{ATSScore: 77}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientDrivesController(t *testing.T) {
	client := NewClient(newServer(t).URL+"/api", time.Second)
	ctrl := interview.NewController(client, interview.WithSpeakDelay(0))
	defer ctrl.Close()
	ctx := context.Background()

	steps := []func() error{
		func() error { return ctrl.SelectMode(interview.ModePronunciation) },
		func() error { return ctrl.SetInputs("resume", "jd") },
		func() error { return ctrl.Start(ctx) },
		func() error { return ctrl.SetAnswer("The quick brown fox.") },
		func() error { return ctrl.Submit(ctx) },
		ctrl.Finish,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	snap := ctrl.Snapshot()
	if snap.State.Phase != interview.PhaseSummary || snap.State.Summary.AverageOverallScore != 8 {
		t.Fatalf("state = %+v", snap.State)
	}
	if q := snap.State.Questions[0]; q.Context != "Stress quick" {
		t.Errorf("question = %+v", q)
	}

	saved, err := client.SaveSession(ctx, snap.State, 42)
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if saved.ID != "s1" || saved.ElapsedSeconds != 42 {
		t.Errorf("saved = %+v", saved)
	}

	list, err := client.ListSessions(ctx, interview.ModePronunciation, 3)
	if err != nil || len(list) != 1 {
		t.Errorf("list = %+v, err = %v", list, err)
	}
}

func TestClientErrors(t *testing.T) {
	client := NewClient(newServer(t).URL+"/api", time.Second)
	ctx := context.Background()

	_, err := client.GenerateQuestions(ctx, "", "jd", interview.ModeDiscussion)
	var verr *apperror.ValidationError
	if !errors.As(err, &verr) || verr.Message != "resume_text, job_description, and mode are required." {
		t.Errorf("err = %v, want validation error with server message", err)
	}

	_, err = client.EvaluateAnswer(ctx, "q", "a", interview.ModeDiscussion)
	var uerr *apperror.UpstreamError
	if !errors.As(err, &uerr) || uerr.Op != "evaluate_answer" {
		t.Errorf("err = %v, want upstream error", err)
	}

	unreachable := NewClient("http://127.0.0.1:1/api", 200*time.Millisecond)
	if _, err := unreachable.EvaluateAnswer(ctx, "q", "a", interview.ModeDiscussion); !errors.As(err, &uerr) {
		t.Errorf("err = %v, want upstream error", err)
	}
}

func TestClientAnalyze(t *testing.T) {
	client := NewClient(newServer(t).URL+"/api/", time.Second)
	resp, err := client.Analyze(context.Background(), "/tmp/cv.pdf", []byte("%PDF-1.4"), "Go developer")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.ID != "a1" || resp.FileName != "cv.pdf" || resp.ATSScore != 77 {
		t.Errorf("resp = %+v", resp)
	}

	if _, err := client.Analyze(context.Background(), "cv.pdf", []byte("%PDF-1.4"), ""); !apperror.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}
