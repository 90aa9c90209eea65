package dto

import (
	"time"

	"github.com/lshigami/hirewise/internal/interview"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SectionFeedback struct {
	Summary    string `json:"summary"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
	Education  string `json:"education"`
}

type Recommendation struct {
	Priority    string `json:"priority" enums:"high,medium,low"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ResumeAnalysisResult is the analysis produced by the model. Scores are 0-100.
type ResumeAnalysisResult struct {
	ATSScore            float64          `json:"ats_score"`
	KeywordScore        float64          `json:"keyword_score"`
	FormatScore         float64          `json:"format_score"`
	ExperienceScore     float64          `json:"experience_score"`
	SkillsScore         float64          `json:"skills_score"`
	MissingKeywords     []string         `json:"missing_keywords"`
	SectionFeedback     SectionFeedback  `json:"section_feedback"`
	Recommendations     []Recommendation `json:"recommendations"`
	SummaryFeedback     string           `json:"summary_feedback"`
	ExtractedResumeText string           `json:"extracted_resume_text"`
}

// ResumeAnalysisResponse is a stored analysis. The analysis fields are inlined
// so clients of the plain analysis schema keep working.
type ResumeAnalysisResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"created_at"`
	ResumeAnalysisResult
}

type StartInterviewResponse struct {
	Mode      interview.Mode       `json:"mode"`
	Questions []interview.Question `json:"questions"`
}

type SessionAnswerResponse struct {
	Position     int                `json:"position"`
	Index        int                `json:"index"`
	Question     interview.Question `json:"question"`
	UserAnswer   string             `json:"answer"`
	OverallScore int                `json:"overall_score"`
	Feedback     string             `json:"feedback"`
	Evaluation   map[string]any     `json:"evaluation"`
}

// SessionSummaryResponse is one row of the session history.
type SessionSummaryResponse struct {
	ID                  string    `json:"id"`
	Mode                string    `json:"mode"`
	QuestionCount       int       `json:"question_count"`
	AverageOverallScore int       `json:"average_overall_score"`
	Rating              string    `json:"rating"`
	ElapsedSeconds      int       `json:"elapsed_seconds"`
	CreatedAt           time.Time `json:"created_at"`
}

type SessionResponse struct {
	SessionSummaryResponse
	AnalysisID string                   `json:"analysis_id,omitempty"`
	Summary    interview.SessionSummary `json:"summary"`
	Answers    []SessionAnswerResponse  `json:"answers"`
}
