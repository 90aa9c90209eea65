package model

import (
	"time"

	"gorm.io/gorm"
)

type InterviewSession struct {
	ID                  uint            `gorm:"primarykey" json:"id"`
	PublicID            string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	Mode                string          `gorm:"size:32;not null;index" json:"mode"`
	AnalysisID          *string         `gorm:"type:varchar(36);index" json:"analysis_id,omitempty"`
	QuestionCount       int             `json:"question_count"`
	AverageOverallScore int             `json:"average_overall_score"`
	ElapsedSeconds      int             `json:"elapsed_seconds"`
	Answers             []SessionAnswer `json:"answers,omitempty" gorm:"foreignKey:InterviewSessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"index" json:"-"`
}
