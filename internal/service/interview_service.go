package service

import (
	"context"
	"strings"

	"github.com/lshigami/hirewise/config"
	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/interview"
	"github.com/lshigami/hirewise/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	opGenerateQuestions = "generate_questions"
	opEvaluateAnswer    = "evaluate_answer"
)

// InterviewService is the server side of the evaluation client: it asks the
// model for question sets and answer evaluations and validates what comes back.
type InterviewService interface {
	interview.Evaluator
	Modes() []interview.ModeInfo
	StartInterview(ctx context.Context, req dto.StartInterviewRequest) (*dto.StartInterviewResponse, error)
	Evaluate(ctx context.Context, req dto.EvaluateAnswerRequest) (interview.Evaluation, error)
}

type interviewService struct {
	llm           GeminiLLMService
	questionCount int
}

func NewInterviewService(llm GeminiLLMService, cfg *config.Config) InterviewService {
	count := cfg.Interview.QuestionCount
	if count <= 0 {
		count = interview.DefaultSessionSize
	}
	return &interviewService{llm: llm, questionCount: count}
}

func (s *interviewService) Modes() []interview.ModeInfo {
	return interview.Modes()
}

func (s *interviewService) StartInterview(ctx context.Context, req dto.StartInterviewRequest) (*dto.StartInterviewResponse, error) {
	if strings.TrimSpace(req.ResumeText) == "" || strings.TrimSpace(req.JobDescription) == "" || strings.TrimSpace(req.Mode) == "" {
		return nil, apperror.Validation("resume_text, job_description, and mode are required.")
	}
	mode, err := interview.ParseMode(req.Mode)
	if err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	questions, err := s.GenerateQuestions(ctx, req.ResumeText, req.JobDescription, mode)
	if err != nil {
		return nil, err
	}
	return &dto.StartInterviewResponse{Mode: mode, Questions: questions}, nil
}

func (s *interviewService) Evaluate(ctx context.Context, req dto.EvaluateAnswerRequest) (interview.Evaluation, error) {
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.UserAnswer) == "" {
		return nil, apperror.Validation("question and user_answer are required.")
	}
	mode := interview.DefaultMode
	if strings.TrimSpace(req.Mode) != "" {
		parsed, err := interview.ParseMode(req.Mode)
		if err != nil {
			log.Warn().Str("mode", req.Mode).Msg("Unknown evaluation mode, using communication rubric")
		} else {
			mode = parsed
		}
	}
	return s.EvaluateAnswer(ctx, req.Question, req.UserAnswer, mode)
}

func (s *interviewService) GenerateQuestions(ctx context.Context, resumeText, jobDescription string, mode interview.Mode) (interview.QuestionSet, error) {
	prompt := mode.QuestionPrompt(resumeText, jobDescription, s.questionCount)
	raw, err := s.llm.GenerateJSON(ctx, opGenerateQuestions, prompt)
	if err != nil {
		return nil, err
	}
	questions, err := interview.DecodeQuestionSet(mode, raw, s.questionCount)
	if err != nil {
		log.Warn().Err(err).Str("mode", string(mode)).Str("raw_response", truncate(string(raw), 500)).Msg("Invalid question set from model")
		return nil, err
	}
	if len(questions) < s.questionCount {
		log.Warn().Int("received", len(questions)).Int("requested", s.questionCount).Msg("Model returned fewer questions than requested")
	}
	log.Info().Str("mode", string(mode)).Int("questions", len(questions)).Msg("Generated interview questions")
	return questions, nil
}

func (s *interviewService) EvaluateAnswer(ctx context.Context, questionText, answerText string, mode interview.Mode) (interview.Evaluation, error) {
	prompt := mode.EvaluationPrompt(questionText, answerText)
	raw, err := s.llm.GenerateJSON(ctx, opEvaluateAnswer, prompt)
	if err != nil {
		return nil, err
	}
	eval, err := interview.DecodeEvaluation(mode, raw)
	if err != nil {
		log.Warn().Err(err).Str("mode", string(mode)).Str("raw_response", truncate(string(raw), 500)).Msg("Invalid evaluation from model")
		return nil, err
	}
	metrics.ObserveAnswerScore(string(mode), eval.Overall())
	return eval, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
