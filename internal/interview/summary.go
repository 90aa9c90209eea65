package interview

import (
	"encoding/json"
	"math"
)

// SessionResult ties one question to the submitted answer and its evaluation.
type SessionResult struct {
	Index      int        `json:"index"`
	Question   Question   `json:"question"`
	Answer     string     `json:"answer"`
	Evaluation Evaluation `json:"evaluation"`
}

type sessionResultJSON struct {
	Index      int             `json:"index"`
	Question   Question        `json:"question"`
	Answer     string          `json:"answer"`
	Evaluation json.RawMessage `json:"evaluation"`
}

// UnmarshalJSON decodes the evaluation with the schema of the question's mode.
func (r *SessionResult) UnmarshalJSON(data []byte) error {
	var aux sessionResultJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Index, r.Question, r.Answer, r.Evaluation = aux.Index, aux.Question, aux.Answer, nil
	if len(aux.Evaluation) == 0 || string(aux.Evaluation) == "null" {
		return nil
	}
	eval, err := DecodeEvaluation(aux.Question.Type, aux.Evaluation)
	if err != nil {
		return err
	}
	r.Evaluation = eval
	return nil
}

// OverallScore is the result's overall score, 0 when it has no evaluation.
func (r SessionResult) OverallScore() int {
	if r.Evaluation == nil {
		return 0
	}
	return r.Evaluation.Overall()
}

// BreakdownEntry is one row of the per-question summary.
type BreakdownEntry struct {
	Index        int    `json:"index"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	OverallScore int    `json:"overall_score"`
	Feedback     string `json:"feedback"`
}

// SessionSummary aggregates every result of a session.
type SessionSummary struct {
	AverageOverallScore int              `json:"average_overall_score"`
	QuestionCount       int              `json:"question_count"`
	Breakdown           []BreakdownEntry `json:"breakdown"`
}

// Aggregate computes the session summary. The average is the rounded mean of
// the overall scores, 0 for no results. The breakdown keeps result order.
func Aggregate(results []SessionResult) SessionSummary {
	summary := SessionSummary{
		QuestionCount: len(results),
		Breakdown:     make([]BreakdownEntry, 0, len(results)),
	}
	if len(results) == 0 {
		return summary
	}

	total := 0
	for _, r := range results {
		score := r.OverallScore()
		total += score
		entry := BreakdownEntry{
			Index:        r.Index,
			Question:     r.Question.Text,
			Answer:       r.Answer,
			OverallScore: score,
		}
		if r.Evaluation != nil {
			entry.Feedback = r.Evaluation.FeedbackText()
		}
		summary.Breakdown = append(summary.Breakdown, entry)
	}
	summary.AverageOverallScore = int(math.Round(float64(total) / float64(len(results))))
	return summary
}

// Rating buckets a 0-10 score the way the summary screen colours it.
func Rating(score int) string {
	switch {
	case score >= 7:
		return "strong"
	case score >= 5:
		return "fair"
	default:
		return "weak"
	}
}
