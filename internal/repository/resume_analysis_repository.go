package repository

import (
	"context"
	"sync"

	"github.com/lshigami/hirewise/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ResumeAnalysisRepository interface {
	Create(ctx context.Context, analysis *model.ResumeAnalysis) error
	FindByPublicID(ctx context.Context, publicID string) (*model.ResumeAnalysis, error)
}

type resumeAnalysisRepository struct {
	db *gorm.DB
}

// NewResumeAnalysisRepository returns a postgres-backed repository, or an
// in-memory one when db is nil.
func NewResumeAnalysisRepository(db *gorm.DB) ResumeAnalysisRepository {
	if db == nil {
		log.Warn().Msg("No database configured, keeping resume analyses in memory")
		return NewMemoryResumeAnalysisRepository()
	}
	return &resumeAnalysisRepository{db: db}
}

func (r *resumeAnalysisRepository) Create(ctx context.Context, analysis *model.ResumeAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *resumeAnalysisRepository) FindByPublicID(ctx context.Context, publicID string) (*model.ResumeAnalysis, error) {
	var analysis model.ResumeAnalysis
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&analysis).Error
	if err != nil {
		return nil, translate(err)
	}
	return &analysis, nil
}

type memoryResumeAnalysisRepository struct {
	mu     sync.RWMutex
	nextID uint
	byID   map[string]model.ResumeAnalysis
}

func NewMemoryResumeAnalysisRepository() ResumeAnalysisRepository {
	return &memoryResumeAnalysisRepository{byID: make(map[string]model.ResumeAnalysis)}
}

func (r *memoryResumeAnalysisRepository) Create(ctx context.Context, analysis *model.ResumeAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	analysis.ID = r.nextID
	now := timeNow()
	analysis.CreatedAt, analysis.UpdatedAt = now, now
	r.byID[analysis.PublicID] = *analysis
	return nil
}

func (r *memoryResumeAnalysisRepository) FindByPublicID(ctx context.Context, publicID string) (*model.ResumeAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[publicID]
	if !ok {
		return nil, ErrNotFound
	}
	return &analysis, nil
}
