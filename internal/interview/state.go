package interview

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/hirewise/internal/apperror"
)

// Phase is a state of the session state machine.
type Phase string

const (
	PhaseModeSelect Phase = "mode_select"
	PhaseSetup      Phase = "setup"
	PhaseInProgress Phase = "in_progress"
	PhaseFeedback   Phase = "feedback"
	PhaseSummary    Phase = "summary"
)

// ErrInvalidTransition is returned when an event does not apply to the
// current phase.
var ErrInvalidTransition = errors.New("invalid session transition")

// SessionState is the whole per-session state. It is a plain value: Reduce
// never mutates its input.
type SessionState struct {
	Phase          Phase           `json:"phase"`
	Mode           Mode            `json:"mode,omitempty"`
	ResumeText     string          `json:"resume_text"`
	JobDescription string          `json:"job_description"`
	SessionSize    int             `json:"session_size"`
	Questions      QuestionSet     `json:"questions,omitempty"`
	CurrentIndex   int             `json:"current_index"`
	Answer         string          `json:"answer"`
	Evaluation     Evaluation      `json:"evaluation,omitempty"`
	Results        []SessionResult `json:"results,omitempty"`
	Summary        *SessionSummary `json:"summary,omitempty"`
	// Generation increases on every reset. Responses started under an older
	// generation are discarded.
	Generation uint64 `json:"generation"`
}

// NewSessionState returns a state waiting for a mode, sized for size questions.
func NewSessionState(size int) SessionState {
	if size <= 0 {
		size = DefaultSessionSize
	}
	return SessionState{Phase: PhaseModeSelect, SessionSize: size}
}

// UnmarshalJSON decodes the current evaluation with the session mode's schema.
func (s *SessionState) UnmarshalJSON(data []byte) error {
	type plain SessionState
	var aux struct {
		plain
		Evaluation json.RawMessage `json:"evaluation,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = SessionState(aux.plain)
	s.Evaluation = nil
	if len(aux.Evaluation) > 0 && string(aux.Evaluation) != "null" {
		eval, err := DecodeEvaluation(s.Mode, aux.Evaluation)
		if err != nil {
			return err
		}
		s.Evaluation = eval
	}
	return nil
}

// CurrentQuestion returns the question being answered, if any.
func (s SessionState) CurrentQuestion() (Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// IsLastQuestion reports whether the current question is the last one.
func (s SessionState) IsLastQuestion() bool {
	return len(s.Questions) > 0 && s.CurrentIndex >= len(s.Questions)-1
}

// Event is an input to Reduce.
type Event interface {
	event()
}

type (
	SelectMode struct{ Mode Mode }
	// BackToModes leaves Setup without starting a session.
	BackToModes struct{}
	EditSetup   struct {
		ResumeText     string
		JobDescription string
	}
	QuestionsLoaded struct{ Questions QuestionSet }
	EditAnswer      struct{ Text string }
	// AppendTranscript adds one finalized speech transcription chunk.
	AppendTranscript struct{ Chunk string }
	AnswerEvaluated  struct{ Evaluation Evaluation }
	Advance          struct{}
	// Finish ends the session early with the results recorded so far.
	Finish struct{}
	Reset  struct{}
)

func (SelectMode) event()       {}
func (BackToModes) event()      {}
func (EditSetup) event()        {}
func (QuestionsLoaded) event()  {}
func (EditAnswer) event()       {}
func (AppendTranscript) event() {}
func (AnswerEvaluated) event()  {}
func (Advance) event()          {}
func (Finish) event()           {}
func (Reset) event()            {}

// Reduce applies e to s. On error s is returned unchanged.
func Reduce(s SessionState, e Event) (SessionState, error) {
	switch ev := e.(type) {
	case SelectMode:
		if err := expect(s, ev, PhaseModeSelect); err != nil {
			return s, err
		}
		if !ev.Mode.Valid() {
			return s, apperror.Validation("invalid mode %q", ev.Mode)
		}
		next := s
		next.Mode = ev.Mode
		next.Phase = PhaseSetup
		return next, nil

	case BackToModes:
		if err := expect(s, ev, PhaseSetup); err != nil {
			return s, err
		}
		next := s
		next.Mode = ""
		next.Phase = PhaseModeSelect
		return next, nil

	case EditSetup:
		if err := expect(s, ev, PhaseSetup); err != nil {
			return s, err
		}
		next := s
		next.ResumeText = ev.ResumeText
		next.JobDescription = ev.JobDescription
		return next, nil

	case QuestionsLoaded:
		if err := expect(s, ev, PhaseSetup); err != nil {
			return s, err
		}
		if len(ev.Questions) == 0 {
			return s, apperror.Malformed("question set has no questions", nil)
		}
		if len(ev.Questions) > s.size() {
			return s, fmt.Errorf("%w: %d questions exceed session size %d", ErrInvalidTransition, len(ev.Questions), s.size())
		}
		next := s
		next.Questions = append(QuestionSet(nil), ev.Questions...)
		next.CurrentIndex = 0
		next.Answer = ""
		next.Evaluation = nil
		next.Results = nil
		next.Summary = nil
		next.Phase = PhaseInProgress
		return next, nil

	case EditAnswer:
		if err := expect(s, ev, PhaseInProgress); err != nil {
			return s, err
		}
		next := s
		next.Answer = ev.Text
		return next, nil

	case AppendTranscript:
		if err := expect(s, ev, PhaseInProgress); err != nil {
			return s, err
		}
		next := s
		next.Answer = AppendChunk(s.Answer, ev.Chunk)
		return next, nil

	case AnswerEvaluated:
		if err := expect(s, ev, PhaseInProgress); err != nil {
			return s, err
		}
		if strings.TrimSpace(s.Answer) == "" {
			return s, apperror.Validation("answer is empty")
		}
		if ev.Evaluation == nil {
			return s, apperror.Malformed("evaluation is missing", nil)
		}
		if ev.Evaluation.Mode() != s.Mode {
			return s, fmt.Errorf("%w: %s evaluation in %s session", ErrInvalidTransition, ev.Evaluation.Mode(), s.Mode)
		}
		q, ok := s.CurrentQuestion()
		if !ok || len(s.Results) >= len(s.Questions) {
			return s, fmt.Errorf("%w: no question to evaluate", ErrInvalidTransition)
		}
		next := s
		next.Evaluation = ev.Evaluation
		next.Results = append(append(make([]SessionResult, 0, len(s.Results)+1), s.Results...), SessionResult{
			Index:      s.CurrentIndex,
			Question:   q,
			Answer:     s.Answer,
			Evaluation: ev.Evaluation,
		})
		next.Phase = PhaseFeedback
		return next, nil

	case Advance:
		if err := expect(s, ev, PhaseFeedback); err != nil {
			return s, err
		}
		next := s
		next.Answer = ""
		next.Evaluation = nil
		if s.IsLastQuestion() {
			return summarize(next), nil
		}
		next.CurrentIndex++
		next.Phase = PhaseInProgress
		return next, nil

	case Finish:
		if err := expect(s, ev, PhaseInProgress, PhaseFeedback); err != nil {
			return s, err
		}
		next := s
		next.Evaluation = nil
		return summarize(next), nil

	case Reset:
		next := NewSessionState(s.SessionSize)
		next.ResumeText = s.ResumeText
		next.JobDescription = s.JobDescription
		next.Generation = s.Generation + 1
		return next, nil

	default:
		return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, e)
	}
}

// AppendChunk joins a transcription chunk onto an answer with one space.
func AppendChunk(answer, chunk string) string {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return answer
	}
	if answer == "" {
		return chunk
	}
	return answer + " " + chunk
}

func summarize(s SessionState) SessionState {
	summary := Aggregate(s.Results)
	s.Summary = &summary
	s.Phase = PhaseSummary
	return s
}

func (s SessionState) size() int {
	if s.SessionSize <= 0 {
		return DefaultSessionSize
	}
	return s.SessionSize
}

func expect(s SessionState, e Event, phases ...Phase) error {
	for _, p := range phases {
		if s.Phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: %T in phase %s", ErrInvalidTransition, e, s.Phase)
}
