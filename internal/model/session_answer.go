package model

import (
	"time"

	"gorm.io/datatypes"
)

// SessionAnswer is one evaluated answer of an interview session.
type SessionAnswer struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	InterviewSessionID uint           `json:"interview_session_id" gorm:"not null;index"`
	Position           int            `json:"position" gorm:"not null"`
	QuestionIndex      int            `json:"question_index" gorm:"not null;default:0"`
	QuestionText       string         `json:"question_text" gorm:"type:text;not null"`
	Question           datatypes.JSON `json:"question"`
	UserAnswer         string         `json:"user_answer" gorm:"type:text;not null"`
	OverallScore       int            `json:"overall_score"`
	Feedback           string         `json:"feedback" gorm:"type:text"`
	Evaluation         datatypes.JSON `json:"evaluation"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
