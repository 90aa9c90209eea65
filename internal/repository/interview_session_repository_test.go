package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/hirewise/internal/model"
)

func TestMemoryInterviewSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInterviewSessionRepository(nil)

	for i, mode := range []string{"communication", "discussion", "communication"} {
		s := &model.InterviewSession{
			PublicID: string(rune('a' + i)),
			Mode:     mode,
			Answers: []model.SessionAnswer{
				{Position: 1, QuestionText: "second"},
				{Position: 0, QuestionText: "first"},
			},
		}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if s.ID != uint(i+1) || s.Answers[0].InterviewSessionID != s.ID {
			t.Fatalf("ids not assigned: %+v", s)
		}
	}

	got, err := repo.FindByPublicIDWithAnswers(ctx, "b")
	if err != nil {
		t.Fatalf("FindByPublicIDWithAnswers: %v", err)
	}
	if got.Mode != "discussion" || got.Answers[0].QuestionText != "first" {
		t.Errorf("got %+v", got)
	}

	if _, err := repo.FindByPublicIDWithAnswers(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	recent, err := repo.FindRecent(ctx, "communication", 10)
	if err != nil {
		t.Fatalf("FindRecent: %v", err)
	}
	if len(recent) != 2 || recent[0].PublicID != "c" || recent[1].PublicID != "a" {
		t.Errorf("recent = %+v, want c then a", recent)
	}
	if recent[0].Answers != nil {
		t.Error("FindRecent returned answers")
	}

	limited, _ := repo.FindRecent(ctx, "", 1)
	if len(limited) != 1 || limited[0].PublicID != "c" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestMemoryResumeAnalysisRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewResumeAnalysisRepository(nil)

	a := &model.ResumeAnalysis{PublicID: "x", FileName: "cv.pdf"}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.FindByPublicID(ctx, "x")
	if err != nil || got.FileName != "cv.pdf" || got.CreatedAt.IsZero() {
		t.Fatalf("FindByPublicID = %+v, %v", got, err)
	}
	if _, err := repo.FindByPublicID(ctx, "y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
