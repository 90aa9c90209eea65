package interview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/rs/zerolog/log"
)

const (
	MinScore = 1
	MaxScore = 10
)

// Score is an integer 1-10 score. Models sometimes answer 7.5 or "7", both
// are accepted and rounded.
type Score int

func (s *Score) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		b = []byte(str)
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("score %s is not a number", b)
	}
	*s = Score(math.Round(f))
	return nil
}

func (s *Score) clamp() {
	if *s < MinScore {
		*s = MinScore
	}
	if *s > MaxScore {
		*s = MaxScore
	}
}

// Evaluation is the structured judgment of one answer. Every mode has its own
// concrete type; OverallScore is common to all of them.
type Evaluation interface {
	Mode() Mode
	Overall() int
	FeedbackText() string
	// Scores returns the mode-specific score fields keyed by their JSON name.
	Scores() map[string]int
	scoreFields() []*Score
}

type PronunciationEvaluation struct {
	PronunciationScore   Score  `json:"pronunciation_score"`
	ClarityScore         Score  `json:"clarity_score"`
	ContentScore         Score  `json:"content_score"`
	OverallScore         Score  `json:"overall_score"`
	Feedback             string `json:"feedback"`
	SuggestedImprovement string `json:"suggested_improvement,omitempty"`
}

func (e *PronunciationEvaluation) Mode() Mode           { return ModePronunciation }
func (e *PronunciationEvaluation) Overall() int         { return int(e.OverallScore) }
func (e *PronunciationEvaluation) FeedbackText() string { return e.Feedback }
func (e *PronunciationEvaluation) Scores() map[string]int {
	return map[string]int{
		"pronunciation_score": int(e.PronunciationScore),
		"clarity_score":       int(e.ClarityScore),
		"content_score":       int(e.ContentScore),
		"overall_score":       int(e.OverallScore),
	}
}
func (e *PronunciationEvaluation) scoreFields() []*Score {
	return []*Score{&e.PronunciationScore, &e.ClarityScore, &e.ContentScore, &e.OverallScore}
}

type CommunicationEvaluation struct {
	StructureScore  Score  `json:"structure_score"`
	RelevanceScore  Score  `json:"relevance_score"`
	ClarityScore    Score  `json:"clarity_score"`
	OverallScore    Score  `json:"overall_score"`
	Feedback        string `json:"feedback"`
	SuggestedAnswer string `json:"suggested_answer,omitempty"`
}

func (e *CommunicationEvaluation) Mode() Mode           { return ModeCommunication }
func (e *CommunicationEvaluation) Overall() int         { return int(e.OverallScore) }
func (e *CommunicationEvaluation) FeedbackText() string { return e.Feedback }
func (e *CommunicationEvaluation) Scores() map[string]int {
	return map[string]int{
		"structure_score": int(e.StructureScore),
		"relevance_score": int(e.RelevanceScore),
		"clarity_score":   int(e.ClarityScore),
		"overall_score":   int(e.OverallScore),
	}
}
func (e *CommunicationEvaluation) scoreFields() []*Score {
	return []*Score{&e.StructureScore, &e.RelevanceScore, &e.ClarityScore, &e.OverallScore}
}

type ProblemSolvingEvaluation struct {
	TechnicalScore    Score  `json:"technical_score"`
	ApproachScore     Score  `json:"approach_score"`
	CompletenessScore Score  `json:"completeness_score"`
	OverallScore      Score  `json:"overall_score"`
	Feedback          string `json:"feedback"`
	SuggestedAnswer   string `json:"suggested_answer,omitempty"`
}

func (e *ProblemSolvingEvaluation) Mode() Mode           { return ModeProblemSolving }
func (e *ProblemSolvingEvaluation) Overall() int         { return int(e.OverallScore) }
func (e *ProblemSolvingEvaluation) FeedbackText() string { return e.Feedback }
func (e *ProblemSolvingEvaluation) Scores() map[string]int {
	return map[string]int{
		"technical_score":    int(e.TechnicalScore),
		"approach_score":     int(e.ApproachScore),
		"completeness_score": int(e.CompletenessScore),
		"overall_score":      int(e.OverallScore),
	}
}
func (e *ProblemSolvingEvaluation) scoreFields() []*Score {
	return []*Score{&e.TechnicalScore, &e.ApproachScore, &e.CompletenessScore, &e.OverallScore}
}

type DiscussionEvaluation struct {
	DepthScore         Score    `json:"depth_score"`
	CommunicationScore Score    `json:"communication_score"`
	CoverageScore      Score    `json:"coverage_score"`
	OverallScore       Score    `json:"overall_score"`
	Feedback           string   `json:"feedback"`
	KeyPointsMissed    []string `json:"key_points_missed,omitempty"`
	SuggestedAnswer    string   `json:"suggested_answer,omitempty"`
}

func (e *DiscussionEvaluation) Mode() Mode           { return ModeDiscussion }
func (e *DiscussionEvaluation) Overall() int         { return int(e.OverallScore) }
func (e *DiscussionEvaluation) FeedbackText() string { return e.Feedback }
func (e *DiscussionEvaluation) Scores() map[string]int {
	return map[string]int{
		"depth_score":         int(e.DepthScore),
		"communication_score": int(e.CommunicationScore),
		"coverage_score":      int(e.CoverageScore),
		"overall_score":       int(e.OverallScore),
	}
}
func (e *DiscussionEvaluation) scoreFields() []*Score {
	return []*Score{&e.DepthScore, &e.CommunicationScore, &e.CoverageScore, &e.OverallScore}
}

// DecodeEvaluation parses an evaluation for mode. Every score field of the
// mode and the feedback text are required; scores outside 1-10 are clamped.
func DecodeEvaluation(mode Mode, data []byte) (Evaluation, error) {
	if !mode.Valid() {
		return nil, apperror.Validation("invalid mode %q", mode)
	}
	v := mode.variant()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, apperror.Malformed("evaluation is not a JSON object", err)
	}
	for _, name := range v.requiredFields {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, apperror.Malformed(fmt.Sprintf("evaluation is missing %q", name), nil)
		}
	}

	eval := v.newEvaluation()
	if err := json.Unmarshal(data, eval); err != nil {
		return nil, apperror.Malformed("evaluation fields have the wrong type", err)
	}
	for _, s := range eval.scoreFields() {
		if *s < MinScore || *s > MaxScore {
			log.Warn().Int("score", int(*s)).Str("mode", string(mode)).Msg("Evaluation score out of range, clamping")
			s.clamp()
		}
	}
	return eval, nil
}
