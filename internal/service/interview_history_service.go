package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/event"
	"github.com/lshigami/hirewise/internal/interview"
	"github.com/lshigami/hirewise/internal/model"
	"github.com/lshigami/hirewise/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// InterviewHistoryService stores finished sessions. The summary is always
// recomputed from the submitted results, never taken from the client.
type InterviewHistoryService interface {
	SaveSession(ctx context.Context, req dto.SaveSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, mode string, limit int) ([]dto.SessionSummaryResponse, error)
}

type interviewHistoryService struct {
	repo      repository.InterviewSessionRepository
	publisher event.Publisher
}

func NewInterviewHistoryService(repo repository.InterviewSessionRepository, publisher event.Publisher) InterviewHistoryService {
	return &interviewHistoryService{repo: repo, publisher: publisher}
}

func (s *interviewHistoryService) SaveSession(ctx context.Context, req dto.SaveSessionRequest) (*dto.SessionResponse, error) {
	mode, err := interview.ParseMode(req.Mode)
	if err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}
	if len(req.Results) == 0 {
		return nil, apperror.Validation("results are required.")
	}
	if len(req.Results) > interview.DefaultSessionSize {
		return nil, apperror.Validation("a session has at most %d results", interview.DefaultSessionSize)
	}
	if req.ElapsedSeconds < 0 {
		return nil, apperror.Validation("elapsed_seconds must not be negative")
	}
	var analysisID *string
	if id := strings.TrimSpace(req.AnalysisID); id != "" {
		if _, err := uuid.Parse(id); err != nil {
			return nil, apperror.Validation("Invalid analysis ID format")
		}
		analysisID = &id
	}

	results := make([]interview.SessionResult, 0, len(req.Results))
	seen := make(map[int]bool, len(req.Results))
	for i, p := range req.Results {
		if strings.TrimSpace(p.Question.Text) == "" || strings.TrimSpace(p.Answer) == "" {
			return nil, apperror.Validation("result %d needs a question and an answer", i)
		}
		if seen[p.Index] {
			return nil, apperror.Validation("result index %d is repeated", p.Index)
		}
		seen[p.Index] = true
		eval, err := interview.DecodeEvaluation(mode, p.Evaluation)
		if err != nil {
			return nil, apperror.Validation("result %d has an invalid evaluation: %v", i, err)
		}
		q := p.Question
		q.Type = mode
		results = append(results, interview.SessionResult{Index: p.Index, Question: q, Answer: p.Answer, Evaluation: eval})
	}
	summary := interview.Aggregate(results)

	session := &model.InterviewSession{
		PublicID:            uuid.NewString(),
		Mode:                string(mode),
		AnalysisID:          analysisID,
		QuestionCount:       summary.QuestionCount,
		AverageOverallScore: summary.AverageOverallScore,
		ElapsedSeconds:      req.ElapsedSeconds,
		Answers:             make([]model.SessionAnswer, 0, len(results)),
	}
	for i, r := range results {
		question, err := json.Marshal(r.Question)
		if err != nil {
			return nil, fmt.Errorf("failed to encode question %d: %w", r.Index, err)
		}
		evaluation, err := json.Marshal(r.Evaluation)
		if err != nil {
			return nil, fmt.Errorf("failed to encode evaluation %d: %w", r.Index, err)
		}
		session.Answers = append(session.Answers, model.SessionAnswer{
			Position:      i,
			QuestionIndex: r.Index,
			QuestionText:  r.Question.Text,
			Question:      question,
			UserAnswer:    r.Answer,
			OverallScore:  r.OverallScore(),
			Feedback:      r.Evaluation.FeedbackText(),
			Evaluation:    evaluation,
		})
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save interview session: %w", err)
	}

	if err := s.publisher.Publish(ctx, event.New(event.InterviewSessionComplete, map[string]any{
		"session_id":            session.PublicID,
		"mode":                  session.Mode,
		"question_count":        summary.QuestionCount,
		"average_overall_score": summary.AverageOverallScore,
	})); err != nil {
		log.Warn().Err(err).Msg("Failed to publish interview.session.completed event")
	}

	log.Info().Str("session_id", session.PublicID).Str("mode", session.Mode).
		Int("average_overall_score", summary.AverageOverallScore).Msg("Interview session saved")
	return toSessionResponse(session)
}

func (s *interviewHistoryService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.Validation("Invalid session ID format")
	}
	session, err := s.repo.FindByPublicIDWithAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session)
}

func (s *interviewHistoryService) ListSessions(ctx context.Context, mode string, limit int) ([]dto.SessionSummaryResponse, error) {
	if mode != "" {
		if _, err := interview.ParseMode(mode); err != nil {
			return nil, apperror.Validation("%s", err.Error())
		}
	}
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	sessions, err := s.repo.FindRecent(ctx, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list interview sessions: %w", err)
	}
	out := make([]dto.SessionSummaryResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionSummary(&sessions[i]))
	}
	return out, nil
}

func toSessionSummary(m *model.InterviewSession) dto.SessionSummaryResponse {
	var resp dto.SessionSummaryResponse
	if err := copier.Copy(&resp, m); err != nil {
		log.Error().Err(err).Str("session_id", m.PublicID).Msg("Failed to map interview session")
	}
	resp.ID = m.PublicID
	resp.Rating = interview.Rating(m.AverageOverallScore)
	return resp
}

// toSessionResponse rebuilds the summary from the stored answers so stored
// and freshly computed sessions render the same way.
func toSessionResponse(m *model.InterviewSession) (*dto.SessionResponse, error) {
	resp := &dto.SessionResponse{
		SessionSummaryResponse: toSessionSummary(m),
		Answers:                make([]dto.SessionAnswerResponse, 0, len(m.Answers)),
	}
	if m.AnalysisID != nil {
		resp.AnalysisID = *m.AnalysisID
	}

	results := make([]interview.SessionResult, 0, len(m.Answers))
	for _, a := range m.Answers {
		answer := dto.SessionAnswerResponse{
			Position:     a.Position,
			Index:        a.QuestionIndex,
			UserAnswer:   a.UserAnswer,
			OverallScore: a.OverallScore,
			Feedback:     a.Feedback,
		}
		if err := json.Unmarshal(a.Question, &answer.Question); err != nil {
			return nil, fmt.Errorf("failed to decode stored question of session %s: %w", m.PublicID, err)
		}
		if err := json.Unmarshal(a.Evaluation, &answer.Evaluation); err != nil {
			return nil, fmt.Errorf("failed to decode stored evaluation of session %s: %w", m.PublicID, err)
		}
		resp.Answers = append(resp.Answers, answer)

		result := interview.SessionResult{Index: a.QuestionIndex, Question: answer.Question, Answer: a.UserAnswer}
		if eval, err := interview.DecodeEvaluation(interview.Mode(m.Mode), a.Evaluation); err == nil {
			result.Evaluation = eval
		} else {
			log.Warn().Err(err).Str("session_id", m.PublicID).Int("position", a.Position).Msg("Stored evaluation no longer decodes")
		}
		results = append(results, result)
	}
	resp.Summary = interview.Aggregate(results)
	return resp, nil
}
