package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/rs/zerolog/log"
)

var (
	// ErrBusy is returned while a question-generation or evaluation call is
	// in flight.
	ErrBusy = errors.New("another request is in progress")
	// ErrStale is returned when the session was reset while a call was in
	// flight. The call's result has been discarded.
	ErrStale = errors.New("session was reset, response discarded")
)

// DefaultSpeakDelay leaves the caller time to render a new question before it
// is read aloud.
const DefaultSpeakDelay = 500 * time.Millisecond

// Evaluator is the AI collaborator behind a session.
type Evaluator interface {
	GenerateQuestions(ctx context.Context, resumeText, jobDescription string, mode Mode) (QuestionSet, error)
	EvaluateAnswer(ctx context.Context, questionText, answerText string, mode Mode) (Evaluation, error)
}

// Snapshot is a consistent copy of everything a front end renders.
type Snapshot struct {
	State SessionState
	// Elapsed is the time spent on the current question.
	Elapsed int
	// SessionElapsed is the time spent on every question so far.
	SessionElapsed int
	Listening      bool
	Speaking       bool
	Busy           bool
}

type Option func(*Controller)

// WithSpeech sets the speech platform. Without it voice actions are no-ops.
func WithSpeech(platform SpeechPlatform) Option {
	return func(c *Controller) { c.platform = platform }
}

// WithSpeakDelay sets the delay before a new question is spoken. A delay of
// zero or less speaks immediately.
func WithSpeakDelay(d time.Duration) Option {
	return func(c *Controller) { c.speakDelay = d }
}

// WithSessionSize sets the maximum number of questions per session.
func WithSessionSize(n int) Option {
	return func(c *Controller) { c.state = NewSessionState(n) }
}

// WithTimer replaces the one-second timer.
func WithTimer(t *Timer) Option {
	return func(c *Controller) { c.timer = t }
}

// Controller owns one SessionState and drives it through the reducer, adding
// the side effects: external calls, the timer and the voice bridge. External
// calls run without holding the lock; a failed call leaves the state exactly
// as it was before the call.
type Controller struct {
	evaluator  Evaluator
	platform   SpeechPlatform
	voice      *VoiceBridge
	timer      *Timer
	speakDelay time.Duration

	mu      sync.Mutex
	state   SessionState
	busy    bool
	pending *time.Timer
	// spent holds the seconds of the questions before the current one.
	spent int
}

func NewController(evaluator Evaluator, opts ...Option) *Controller {
	c := &Controller{
		evaluator:  evaluator,
		speakDelay: DefaultSpeakDelay,
		state:      NewSessionState(DefaultSessionSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timer == nil {
		c.timer = NewTimer(time.Second)
	}
	c.voice = NewVoiceBridge(c.platform, c.appendTranscript)
	return c
}

// Snapshot returns the current state with the timer and voice indicators.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	s := Snapshot{State: c.state, Busy: c.busy}
	s.Elapsed = c.timer.Elapsed()
	s.SessionElapsed = c.spent + s.Elapsed
	c.mu.Unlock()
	s.Listening = c.voice.Listening()
	s.Speaking = c.voice.Speaking()
	return s
}

func (c *Controller) SelectMode(mode Mode) error {
	return c.apply(SelectMode{Mode: mode})
}

func (c *Controller) BackToModes() error {
	return c.apply(BackToModes{})
}

// SetInputs stores the setup form. Inputs survive failed starts and resets.
func (c *Controller) SetInputs(resumeText, jobDescription string) error {
	return c.apply(EditSetup{ResumeText: resumeText, JobDescription: jobDescription})
}

// SetAnswer replaces the typed answer of the current question.
func (c *Controller) SetAnswer(text string) error {
	return c.apply(EditAnswer{Text: text})
}

// Start requests the question set. Empty inputs fail before any call is made.
// On success the timer restarts and the first question is spoken after the
// speak delay.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	s := c.state
	if s.Phase != PhaseSetup {
		c.mu.Unlock()
		return fmt.Errorf("%w: start in phase %s", ErrInvalidTransition, s.Phase)
	}
	if strings.TrimSpace(s.ResumeText) == "" {
		c.mu.Unlock()
		return apperror.Validation("resume text is required")
	}
	if strings.TrimSpace(s.JobDescription) == "" {
		c.mu.Unlock()
		return apperror.Validation("job description is required")
	}
	c.busy = true
	c.mu.Unlock()

	log.Info().Str("mode", string(s.Mode)).Msg("Generating interview questions")
	questions, err := c.evaluator.GenerateQuestions(ctx, s.ResumeText, s.JobDescription, s.Mode)

	c.mu.Lock()
	if c.state.Generation != s.Generation {
		c.mu.Unlock()
		log.Debug().Uint64("generation", s.Generation).Msg("Discarding question set of a reset session")
		return ErrStale
	}
	c.busy = false
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to generate questions: %w", err)
	}
	if len(questions) > c.state.size() {
		questions = questions[:c.state.size()]
	}
	next, err := Reduce(c.state, QuestionsLoaded{Questions: questions})
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = next
	c.spent = 0
	c.timer.Restart()
	speakNow := c.scheduleSpeakLocked(next)
	c.mu.Unlock()

	if speakNow != nil {
		speakNow()
	}
	return nil
}

// Submit evaluates the current answer. The answer is frozen while the call
// is in flight and kept unchanged when the call fails.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	s := c.state
	if s.Phase != PhaseInProgress {
		c.mu.Unlock()
		return fmt.Errorf("%w: submit in phase %s", ErrInvalidTransition, s.Phase)
	}
	if strings.TrimSpace(s.Answer) == "" {
		c.mu.Unlock()
		return apperror.Validation("answer is required")
	}
	q, ok := s.CurrentQuestion()
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: no current question", ErrInvalidTransition)
	}
	c.busy = true
	c.mu.Unlock()

	log.Info().Int("question", s.CurrentIndex).Str("mode", string(s.Mode)).Msg("Evaluating answer")
	eval, err := c.evaluator.EvaluateAnswer(ctx, q.Text, s.Answer, s.Mode)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Generation != s.Generation {
		log.Debug().Uint64("generation", s.Generation).Msg("Discarding evaluation of a reset session")
		return ErrStale
	}
	c.busy = false
	if err != nil {
		return fmt.Errorf("failed to evaluate answer: %w", err)
	}
	next, err := Reduce(c.state, AnswerEvaluated{Evaluation: eval})
	if err != nil {
		return err
	}
	c.state = next
	c.timer.Stop()
	return nil
}

// Next leaves the feedback view: it moves to the next question, restarting
// the timer and speaking the question, or shows the summary after the last.
func (c *Controller) Next() error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	next, err := Reduce(c.state, Advance{})
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = next
	c.cancelPendingLocked()
	var speakNow func()
	if next.Phase == PhaseInProgress {
		c.spent += c.timer.Elapsed()
		c.timer.Restart()
		speakNow = c.scheduleSpeakLocked(next)
	} else {
		c.timer.Stop()
	}
	c.mu.Unlock()

	c.voice.Cancel()
	if speakNow != nil {
		speakNow()
	}
	return nil
}

// Finish ends the session early and summarizes the results recorded so far.
func (c *Controller) Finish() error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	next, err := Reduce(c.state, Finish{})
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = next
	c.cancelPendingLocked()
	c.timer.Stop()
	c.mu.Unlock()

	c.voice.Shutdown()
	return nil
}

// Reset returns to mode selection from any phase. Any call in flight is
// abandoned and its result will be discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	next, _ := Reduce(c.state, Reset{})
	c.state = next
	c.busy = false
	c.cancelPendingLocked()
	c.spent = 0
	c.timer.Reset()
	c.mu.Unlock()

	c.voice.Shutdown()
}

// ToggleListening starts or stops voice transcription into the answer.
func (c *Controller) ToggleListening() error {
	c.mu.Lock()
	phase := c.state.Phase
	c.mu.Unlock()
	if phase != PhaseInProgress && !c.voice.Listening() {
		return fmt.Errorf("%w: listen in phase %s", ErrInvalidTransition, phase)
	}
	c.voice.ToggleListening()
	return nil
}

// ToggleSpeak reads the current question aloud, or stops reading it.
func (c *Controller) ToggleSpeak() error {
	c.mu.Lock()
	q, ok := c.state.CurrentQuestion()
	phase := c.state.Phase
	c.mu.Unlock()
	if !ok || (phase != PhaseInProgress && phase != PhaseFeedback) {
		return fmt.Errorf("%w: speak in phase %s", ErrInvalidTransition, phase)
	}
	c.voice.Speak(q.Text)
	return nil
}

// Close stops the timer and every voice activity.
func (c *Controller) Close() {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.timer.Stop()
	c.mu.Unlock()
	c.voice.Shutdown()
}

func (c *Controller) apply(e Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	next, err := Reduce(c.state, e)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

func (c *Controller) appendTranscript(chunk string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		log.Debug().Msg("Dropping transcript chunk while answer is being evaluated")
		return
	}
	next, err := Reduce(c.state, AppendTranscript{Chunk: chunk})
	if err != nil {
		log.Debug().Err(err).Msg("Dropping transcript chunk")
		return
	}
	c.state = next
}

// scheduleSpeakLocked arranges for the current question of s to be spoken
// after the speak delay, unless the session moved on in the meantime. With no
// delay it returns the speak func for the caller to run once c.mu is
// released. c.mu must be held.
func (c *Controller) scheduleSpeakLocked(s SessionState) func() {
	q, ok := s.CurrentQuestion()
	if !ok {
		return nil
	}
	gen, index := s.Generation, s.CurrentIndex
	say := func() {
		c.mu.Lock()
		current := c.state.Generation == gen && c.state.Phase == PhaseInProgress && c.state.CurrentIndex == index
		c.mu.Unlock()
		if current && !c.voice.Speaking() {
			c.voice.Speak(q.Text)
		}
	}
	if c.speakDelay <= 0 {
		return say
	}
	c.pending = time.AfterFunc(c.speakDelay, say)
	return nil
}

func (c *Controller) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
