package interview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/rs/zerolog/log"
)

// DefaultSessionSize is the number of questions in one session.
const DefaultSessionSize = 5

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is one prompt the candidate answers. Only the optional fields of
// its Type are ever populated.
type Question struct {
	Type             Mode       `json:"type"`
	Text             string     `json:"text"`
	Difficulty       Difficulty `json:"difficulty"`
	Context          string     `json:"context,omitempty"`
	Hint             string     `json:"hint,omitempty"`
	ExpectedConcepts []string   `json:"expected_concepts,omitempty"`
	KeyPoints        []string   `json:"key_points,omitempty"`
}

// QuestionSet is the ordered, immutable batch of questions of one session.
type QuestionSet []Question

type questionSetEnvelope struct {
	Questions []json.RawMessage `json:"questions"`
}

// DecodeQuestionSet parses a question-generation response for mode. Questions
// beyond max are dropped; every question is forced to the session mode and
// stripped of fields belonging to other modes.
func DecodeQuestionSet(mode Mode, data []byte, max int) (QuestionSet, error) {
	if !mode.Valid() {
		return nil, apperror.Validation("invalid mode %q", mode)
	}
	if max <= 0 {
		max = DefaultSessionSize
	}

	var env questionSetEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, apperror.Malformed("question set is not valid JSON", err)
	}
	if len(env.Questions) == 0 {
		return nil, apperror.Malformed("question set has no questions", nil)
	}
	if len(env.Questions) > max {
		log.Warn().Int("received", len(env.Questions)).Int("max", max).Msg("Question set larger than session size, truncating")
		env.Questions = env.Questions[:max]
	}

	v := mode.variant()
	set := make(QuestionSet, 0, len(env.Questions))
	for i, raw := range env.Questions {
		var q Question
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, apperror.Malformed(fmt.Sprintf("question %d", i+1), err)
		}
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			return nil, apperror.Malformed(fmt.Sprintf("question %d has no text", i+1), nil)
		}
		if q.Type != mode {
			q.Type = mode
		}
		q.Difficulty = normalizeDifficulty(q.Difficulty)
		v.sanitize(&q)
		set = append(set, q)
	}
	return set, nil
}

func normalizeDifficulty(d Difficulty) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(string(d)))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	case DifficultyMedium:
		return DifficultyMedium
	default:
		log.Debug().Str("difficulty", string(d)).Msg("Unknown difficulty, using medium")
		return DifficultyMedium
	}
}
