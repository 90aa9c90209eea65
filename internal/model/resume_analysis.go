package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResumeAnalysis struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	PublicID            string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	FileName            string         `gorm:"size:255;not null" json:"file_name"`
	ContentType         string         `gorm:"size:128" json:"content_type"`
	FileSize            int64          `json:"file_size"`
	ContentHash         string         `gorm:"size:64;index" json:"content_hash"`
	StorageKey          *string        `gorm:"size:512" json:"storage_key,omitempty"`
	JobDescription      string         `gorm:"type:text;not null" json:"job_description"`
	ATSScore            float64        `json:"ats_score"`
	KeywordScore        float64        `json:"keyword_score"`
	FormatScore         float64        `json:"format_score"`
	ExperienceScore     float64        `json:"experience_score"`
	SkillsScore         float64        `json:"skills_score"`
	MissingKeywordsJSON datatypes.JSON `gorm:"column:missing_keywords" json:"missing_keywords"`
	SectionFeedbackJSON datatypes.JSON `gorm:"column:section_feedback" json:"section_feedback"`
	RecommendationsJSON datatypes.JSON `gorm:"column:recommendations" json:"recommendations"`
	SummaryFeedback     string         `gorm:"type:text" json:"summary_feedback"`
	ExtractedResumeText string         `gorm:"type:text" json:"extracted_resume_text"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}
