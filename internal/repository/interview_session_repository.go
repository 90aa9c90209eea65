package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lshigami/hirewise/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var timeNow = func() time.Time { return time.Now().UTC() }

type InterviewSessionRepository interface {
	// Create stores the session together with its answers.
	Create(ctx context.Context, session *model.InterviewSession) error
	FindByPublicIDWithAnswers(ctx context.Context, publicID string) (*model.InterviewSession, error)
	// FindRecent lists sessions newest first, without answers.
	FindRecent(ctx context.Context, mode string, limit int) ([]model.InterviewSession, error)
}

type interviewSessionRepository struct {
	db *gorm.DB
}

// NewInterviewSessionRepository returns a postgres-backed repository, or an
// in-memory one when db is nil.
func NewInterviewSessionRepository(db *gorm.DB) InterviewSessionRepository {
	if db == nil {
		log.Warn().Msg("No database configured, keeping interview sessions in memory")
		return NewMemoryInterviewSessionRepository()
	}
	return &interviewSessionRepository{db: db}
}

func (r *interviewSessionRepository) Create(ctx context.Context, session *model.InterviewSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(session).Error
	})
}

func (r *interviewSessionRepository) FindByPublicIDWithAnswers(ctx context.Context, publicID string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_answers.position ASC")
		}).
		Where("public_id = ?", publicID).
		First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *interviewSessionRepository) FindRecent(ctx context.Context, mode string, limit int) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	query := r.db.WithContext(ctx).Model(&model.InterviewSession{})
	if mode != "" {
		query = query.Where("mode = ?", mode)
	}
	err := query.Order("created_at DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}

type memoryInterviewSessionRepository struct {
	mu       sync.RWMutex
	nextID   uint
	sessions []model.InterviewSession
}

func NewMemoryInterviewSessionRepository() InterviewSessionRepository {
	return &memoryInterviewSessionRepository{}
}

func (r *memoryInterviewSessionRepository) Create(ctx context.Context, session *model.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	session.ID = r.nextID
	now := timeNow()
	session.CreatedAt, session.UpdatedAt = now, now
	for i := range session.Answers {
		session.Answers[i].InterviewSessionID = session.ID
		session.Answers[i].CreatedAt, session.Answers[i].UpdatedAt = now, now
	}
	stored := *session
	stored.Answers = append([]model.SessionAnswer(nil), session.Answers...)
	r.sessions = append(r.sessions, stored)
	return nil
}

func (r *memoryInterviewSessionRepository) FindByPublicIDWithAnswers(ctx context.Context, publicID string) (*model.InterviewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		if s.PublicID == publicID {
			s.Answers = append([]model.SessionAnswer(nil), s.Answers...)
			sort.Slice(s.Answers, func(i, j int) bool { return s.Answers[i].Position < s.Answers[j].Position })
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryInterviewSessionRepository) FindRecent(ctx context.Context, mode string, limit int) ([]model.InterviewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.InterviewSession
	for i := len(r.sessions) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		s := r.sessions[i]
		if mode != "" && s.Mode != mode {
			continue
		}
		s.Answers = nil
		out = append(out, s)
	}
	return out, nil
}
