package dto

import (
	"encoding/json"

	"github.com/lshigami/hirewise/internal/interview"
)

// StartInterviewRequest asks for a question set tailored to a resume and a job.
type StartInterviewRequest struct {
	ResumeText     string `json:"resume_text" example:"Backend engineer with 5 years of Go experience..."`
	JobDescription string `json:"job_description" example:"Senior Go engineer to build payment services..."`
	Mode           string `json:"mode" example:"communication" enums:"pronunciation,communication,problem_solving,discussion"`
}

// EvaluateAnswerRequest asks for the evaluation of one answer. An empty mode
// is evaluated as communication.
type EvaluateAnswerRequest struct {
	Question   string `json:"question" example:"Tell me about a time you resolved a conflict in your team."`
	UserAnswer string `json:"user_answer" example:"In my last role two engineers disagreed on..."`
	Mode       string `json:"mode" example:"communication"`
}

// SessionResultPayload is one answered question of a finished session.
// Evaluation is decoded with the schema of the session mode.
type SessionResultPayload struct {
	Index      int                `json:"index"`
	Question   interview.Question `json:"question"`
	Answer     string             `json:"answer"`
	Evaluation json.RawMessage    `json:"evaluation" swaggertype:"object"`
}

type SaveSessionRequest struct {
	Mode           string                 `json:"mode" binding:"required" example:"discussion"`
	AnalysisID     string                 `json:"analysis_id,omitempty" example:"5b0c3c5e-3c1e-4d7e-9a59-0c9f6f0c2b4e"`
	ElapsedSeconds int                    `json:"elapsed_seconds" binding:"min=0"`
	Results        []SessionResultPayload `json:"results" binding:"required,min=1,dive"`
}
