package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/event"
	"github.com/lshigami/hirewise/internal/interview"
	"github.com/lshigami/hirewise/internal/repository"
)

func discussionResult(index, overall int) dto.SessionResultPayload {
	return dto.SessionResultPayload{
		Index:    index,
		Question: interview.Question{Type: interview.ModeDiscussion, Text: fmt.Sprintf("Question %d?", index+1), Difficulty: interview.DifficultyMedium},
		Answer:   fmt.Sprintf("Answer %d", index+1),
		Evaluation: json.RawMessage(fmt.Sprintf(
			`{"depth_score":%d,"communication_score":%d,"coverage_score":%d,"overall_score":%d,"feedback":"Feedback %d"}`,
			overall, overall, overall, overall, index+1)),
	}
}

func TestSaveSession(t *testing.T) {
	recorder := &event.Recorder{}
	svc := NewInterviewHistoryService(repository.NewMemoryInterviewSessionRepository(), recorder)
	ctx := context.Background()

	req := dto.SaveSessionRequest{Mode: "discussion", ElapsedSeconds: 312}
	for i, score := range []int{6, 7, 8, 5, 9} {
		req.Results = append(req.Results, discussionResult(i, score))
	}

	saved, err := svc.SaveSession(ctx, req)
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if saved.AverageOverallScore != 7 || saved.QuestionCount != 5 || saved.Rating != "strong" {
		t.Errorf("saved = %+v", saved.SessionSummaryResponse)
	}
	if len(saved.Summary.Breakdown) != 5 || saved.Summary.Breakdown[2].Feedback != "Feedback 3" {
		t.Errorf("breakdown = %+v", saved.Summary.Breakdown)
	}
	if events := recorder.Events(); len(events) != 1 || events[0].Type != event.InterviewSessionComplete {
		t.Errorf("events = %+v", events)
	}

	got, err := svc.GetSession(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Summary.AverageOverallScore != 7 || len(got.Answers) != 5 {
		t.Errorf("got = %+v", got)
	}
	if got.Answers[4].Evaluation["overall_score"] != float64(9) {
		t.Errorf("stored evaluation = %v", got.Answers[4].Evaluation)
	}

	list, err := svc.ListSessions(ctx, "discussion", 0)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Errorf("list = %+v", list)
	}
	if list, _ := svc.ListSessions(ctx, "communication", 0); len(list) != 0 {
		t.Errorf("communication list = %+v", list)
	}
}

func TestSaveSessionKeepsSubmittedOrder(t *testing.T) {
	svc := NewInterviewHistoryService(repository.NewMemoryInterviewSessionRepository(), &event.Recorder{})
	ctx := context.Background()

	req := dto.SaveSessionRequest{Mode: "discussion", Results: []dto.SessionResultPayload{
		discussionResult(3, 8),
		discussionResult(0, 6),
		discussionResult(2, 4),
	}}
	saved, err := svc.SaveSession(ctx, req)
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	got, err := svc.GetSession(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}

	wantIndexes := []int{3, 0, 2}
	for name, resp := range map[string]*dto.SessionResponse{"saved": saved, "stored": got} {
		if len(resp.Answers) != len(wantIndexes) || len(resp.Summary.Breakdown) != len(wantIndexes) {
			t.Fatalf("%s: answers = %+v", name, resp.Answers)
		}
		for i, want := range wantIndexes {
			if a := resp.Answers[i]; a.Position != i || a.Index != want {
				t.Errorf("%s answer %d: position %d index %d, want %d %d", name, i, a.Position, a.Index, i, want)
			}
			if b := resp.Summary.Breakdown[i]; b.Index != want {
				t.Errorf("%s breakdown %d: index %d, want %d", name, i, b.Index, want)
			}
		}
	}
}

func TestSaveSessionValidation(t *testing.T) {
	wrongSchema := discussionResult(0, 7)
	wrongSchema.Evaluation = json.RawMessage(`{"overall_score":7,"feedback":"x"}`)
	empty := discussionResult(0, 7)
	empty.Answer = " "

	tests := []struct {
		name string
		req  dto.SaveSessionRequest
	}{
		{"unknown mode", dto.SaveSessionRequest{Mode: "karaoke", Results: []dto.SessionResultPayload{discussionResult(0, 7)}}},
		{"no results", dto.SaveSessionRequest{Mode: "discussion"}},
		{"evaluation of another mode", dto.SaveSessionRequest{Mode: "discussion", Results: []dto.SessionResultPayload{wrongSchema}}},
		{"empty answer", dto.SaveSessionRequest{Mode: "discussion", Results: []dto.SessionResultPayload{empty}}},
		{"repeated index", dto.SaveSessionRequest{Mode: "discussion", Results: []dto.SessionResultPayload{discussionResult(0, 7), discussionResult(0, 8)}}},
		{"bad analysis id", dto.SaveSessionRequest{Mode: "discussion", AnalysisID: "abc", Results: []dto.SessionResultPayload{discussionResult(0, 7)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewInterviewHistoryService(repository.NewMemoryInterviewSessionRepository(), event.NoopPublisher{})
			if _, err := svc.SaveSession(context.Background(), tt.req); !apperror.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestGetSessionNotFound(t *testing.T) {
	svc := NewInterviewHistoryService(repository.NewMemoryInterviewSessionRepository(), event.NoopPublisher{})
	_, err := svc.GetSession(context.Background(), "5b0c3c5e-3c1e-4d7e-9a59-0c9f6f0c2b4e")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
