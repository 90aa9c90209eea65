package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lshigami/hirewise/config"
	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/interview"
)

func newInterviewService(llm GeminiLLMService) InterviewService {
	return NewInterviewService(llm, &config.Config{Interview: config.Interview{QuestionCount: 5}})
}

func TestStartInterview(t *testing.T) {
	llm := &fakeLLM{response: "```json\n" + `{"questions":[
		{"type":"discussion","text":"Design a URL shortener.","key_points":["hashing","storage"],"difficulty":"hard"},
		{"type":"discussion","text":"How would you scale a chat service?","key_points":["fan-out"],"difficulty":"medium"}
	]}` + "\n```"}
	svc := newInterviewService(llm)

	resp, err := svc.StartInterview(context.Background(), dto.StartInterviewRequest{
		ResumeText: "Go engineer", JobDescription: "Platform team", Mode: "discussion",
	})
	if err != nil {
		t.Fatalf("StartInterview: %v", err)
	}
	if resp.Mode != interview.ModeDiscussion || len(resp.Questions) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Questions[0].KeyPoints[1] != "storage" {
		t.Errorf("key points = %v", resp.Questions[0].KeyPoints)
	}
	prompt := llm.calls[0].prompt
	if !strings.Contains(prompt, "Resume: Go engineer") || !strings.Contains(prompt, "Generate 5 technical discussion") {
		t.Errorf("prompt = %s", prompt)
	}
}

func TestStartInterviewValidation(t *testing.T) {
	tests := []dto.StartInterviewRequest{
		{ResumeText: "r", JobDescription: "", Mode: "communication"},
		{ResumeText: " ", JobDescription: "j", Mode: "communication"},
		{ResumeText: "r", JobDescription: "j"},
		{ResumeText: "r", JobDescription: "j", Mode: "karaoke"},
	}
	for _, req := range tests {
		llm := &fakeLLM{}
		_, err := newInterviewService(llm).StartInterview(context.Background(), req)
		if !apperror.IsValidation(err) {
			t.Errorf("%+v: err = %v, want validation error", req, err)
		}
		if llm.callCount() != 0 {
			t.Errorf("%+v: model called", req)
		}
	}
}

func TestStartInterviewMalformed(t *testing.T) {
	llm := &fakeLLM{response: `I cannot help with that.`}
	_, err := newInterviewService(llm).StartInterview(context.Background(), dto.StartInterviewRequest{
		ResumeText: "r", JobDescription: "j", Mode: "communication",
	})
	if !errors.Is(err, apperror.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		mode string
	}{
		{name: "empty mode", mode: ""},
		{name: "explicit communication", mode: "communication"},
		{name: "unknown mode", mode: "behavioral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeLLM{response: `{"structure_score":8,"relevance_score":7,"clarity_score":9,"overall_score":8,"feedback":"Good STAR structure.","suggested_answer":"..."}`}
			svc := newInterviewService(llm)

			eval, err := svc.Evaluate(context.Background(), dto.EvaluateAnswerRequest{
				Question: "Tell me about a conflict.", UserAnswer: "I listened first.", Mode: tt.mode,
			})
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if eval.Mode() != interview.ModeCommunication || eval.Overall() != 8 {
				t.Errorf("eval = %+v", eval)
			}
			if llm.callCount() != 1 || !strings.Contains(llm.calls[0].prompt, "STAR method") {
				t.Errorf("mode %q did not use the communication prompt: %+v", tt.mode, llm.calls)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	upstream := apperror.Upstream(opEvaluateAnswer, errors.New("deadline exceeded"))
	tests := []struct {
		name  string
		req   dto.EvaluateAnswerRequest
		llm   *fakeLLM
		check func(error) bool
	}{
		{
			name:  "missing answer",
			req:   dto.EvaluateAnswerRequest{Question: "q"},
			llm:   &fakeLLM{},
			check: apperror.IsValidation,
		},
		{
			name:  "blank question",
			req:   dto.EvaluateAnswerRequest{Question: "  ", UserAnswer: "a", Mode: "karaoke"},
			llm:   &fakeLLM{},
			check: apperror.IsValidation,
		},
		{
			name:  "upstream failure",
			req:   dto.EvaluateAnswerRequest{Question: "q", UserAnswer: "a", Mode: "problem_solving"},
			llm:   &fakeLLM{err: upstream},
			check: func(err error) bool { return errors.Is(err, upstream) },
		},
		{
			name:  "missing overall score",
			req:   dto.EvaluateAnswerRequest{Question: "q", UserAnswer: "a", Mode: "problem_solving"},
			llm:   &fakeLLM{response: `{"technical_score":5,"approach_score":5,"completeness_score":5,"score":5,"feedback":"f"}`},
			check: func(err error) bool { return errors.Is(err, apperror.ErrMalformedResponse) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newInterviewService(tt.llm).Evaluate(context.Background(), tt.req)
			if !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestInterviewServiceDrivesController(t *testing.T) {
	llm := &fakeLLM{response: `{"questions":[{"type":"pronunciation","text":"Kubernetes","context":"We deploy on Kubernetes.","difficulty":"easy"}]}`}
	svc := newInterviewService(llm)
	c := interview.NewController(svc, interview.WithSpeakDelay(0))
	defer c.Close()

	_ = c.SelectMode(interview.ModePronunciation)
	_ = c.SetInputs("resume", "jd")
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	llm.response = `{"pronunciation_score":9,"clarity_score":8,"content_score":9,"overall_score":9,"feedback":"Clear."}`
	_ = c.SetAnswer("Kubernetes")
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := c.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	s := c.Snapshot().State
	if s.Phase != interview.PhaseSummary || s.Summary.AverageOverallScore != 9 {
		t.Errorf("state = %+v", s)
	}
}
