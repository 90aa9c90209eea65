package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/cache"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/event"
	"github.com/lshigami/hirewise/internal/metrics"
	"github.com/lshigami/hirewise/internal/model"
	"github.com/lshigami/hirewise/internal/repository"
	"github.com/lshigami/hirewise/internal/storage"
	"github.com/rs/zerolog/log"
)

const opAnalyzeResume = "analyze_resume"

var analysisRequiredFields = []string{
	"ats_score", "keyword_score", "format_score", "experience_score", "skills_score", "summary_feedback",
}

type ResumeAnalysisService interface {
	AnalyzeResume(ctx context.Context, fileName string, data []byte, jobDescription string) (*dto.ResumeAnalysisResponse, error)
	GetAnalysis(ctx context.Context, id string) (*dto.ResumeAnalysisResponse, error)
	// GetResumeFile returns the uploaded file of an analysis.
	GetResumeFile(ctx context.Context, id string) (*ResumeFile, error)
}

type ResumeFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

type resumeAnalysisService struct {
	llm       GeminiLLMService
	extractor DocumentExtractor
	repo      repository.ResumeAnalysisRepository
	cache     cache.AnalysisCache
	store     storage.ResumeStore
	publisher event.Publisher
}

func NewResumeAnalysisService(
	llm GeminiLLMService,
	extractor DocumentExtractor,
	repo repository.ResumeAnalysisRepository,
	analysisCache cache.AnalysisCache,
	store storage.ResumeStore,
	publisher event.Publisher,
) ResumeAnalysisService {
	return &resumeAnalysisService{
		llm:       llm,
		extractor: extractor,
		repo:      repo,
		cache:     analysisCache,
		store:     store,
		publisher: publisher,
	}
}

func (s *resumeAnalysisService) AnalyzeResume(ctx context.Context, fileName string, data []byte, jobDescription string) (*dto.ResumeAnalysisResponse, error) {
	if len(data) == 0 || strings.TrimSpace(jobDescription) == "" {
		return nil, apperror.Validation("Resume file and job description are required.")
	}
	kind, err := s.extractor.Detect(fileName, data)
	if err != nil {
		return nil, err
	}

	key := cacheKey(data, jobDescription)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		metrics.ObserveCacheLookup("error")
		log.Warn().Err(err).Msg("Resume analysis cache lookup failed")
	} else if cached != nil {
		metrics.ObserveCacheLookup("hit")
		log.Info().Str("analysis_id", cached.ID).Msg("Serving resume analysis from cache")
		return &dto.ResumeAnalysisResponse{
			ID:                   cached.ID,
			FileName:             cached.FileName,
			Cached:               true,
			CreatedAt:            cached.CreatedAt,
			ResumeAnalysisResult: cached.Result,
		}, nil
	} else {
		metrics.ObserveCacheLookup("miss")
	}

	result, err := s.analyze(ctx, kind, data, jobDescription)
	if err != nil {
		return nil, err
	}

	analysis := &model.ResumeAnalysis{
		PublicID:       uuid.NewString(),
		FileName:       filepath.Base(fileName),
		ContentType:    kind.MIMEType(),
		FileSize:       int64(len(data)),
		ContentHash:    key[:64],
		JobDescription: jobDescription,
	}
	if err := copier.Copy(analysis, result); err != nil {
		return nil, fmt.Errorf("failed to map analysis: %w", err)
	}
	if err := encodeAnalysisJSON(analysis, result); err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("resumes/%s.%s", analysis.PublicID, kind)
	if stored, err := s.store.Put(ctx, objectKey, kind.MIMEType(), data); err != nil {
		log.Warn().Err(err).Str("key", objectKey).Msg("Failed to store uploaded resume")
	} else if stored {
		analysis.StorageKey = &objectKey
	}

	if err := s.repo.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to save resume analysis: %w", err)
	}

	resp := &dto.ResumeAnalysisResponse{
		ID:                   analysis.PublicID,
		FileName:             analysis.FileName,
		CreatedAt:            analysis.CreatedAt,
		ResumeAnalysisResult: *result,
	}

	if err := s.cache.Set(ctx, key, &cache.CachedAnalysis{
		ID:        resp.ID,
		FileName:  resp.FileName,
		CreatedAt: resp.CreatedAt,
		Result:    *result,
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to cache resume analysis")
	}

	if err := s.publisher.Publish(ctx, event.New(event.ResumeAnalyzed, map[string]any{
		"analysis_id": resp.ID,
		"file_name":   resp.FileName,
		"ats_score":   result.ATSScore,
	})); err != nil {
		log.Warn().Err(err).Msg("Failed to publish resume.analyzed event")
	}

	log.Info().Str("analysis_id", resp.ID).Float64("ats_score", result.ATSScore).Msg("Resume analyzed")
	return resp, nil
}

func (s *resumeAnalysisService) analyze(ctx context.Context, kind DocumentKind, data []byte, jobDescription string) (*dto.ResumeAnalysisResult, error) {
	var (
		raw []byte
		err error
		// localText is the text extracted here rather than by the model.
		localText string
	)
	switch kind {
	case DocumentDOCX:
		localText, err = s.extractor.ExtractText(kind, data)
		if err != nil {
			return nil, apperror.Validation("Could not read DOCX file: %v", err)
		}
		if localText == "" {
			return nil, apperror.Validation("DOCX file contains no text.")
		}
		raw, err = s.llm.GenerateJSON(ctx, opAnalyzeResume, analysisPrompt(jobDescription, localText))
	default:
		raw, err = s.llm.GenerateJSON(ctx, opAnalyzeResume, analysisPrompt(jobDescription, ""),
			Attachment{MIMEType: kind.MIMEType(), Data: data})
	}
	if err != nil {
		return nil, err
	}

	result, err := decodeAnalysis(raw)
	if err != nil {
		log.Warn().Err(err).Str("raw_response", truncate(string(raw), 500)).Msg("Invalid resume analysis from model")
		return nil, err
	}

	switch {
	case localText != "":
		result.ExtractedResumeText = localText
	case strings.TrimSpace(result.ExtractedResumeText) == "" && kind == DocumentPDF:
		text, err := s.extractor.ExtractText(kind, data)
		if err != nil {
			log.Warn().Err(err).Msg("Model returned no resume text and local PDF extraction failed")
		} else {
			result.ExtractedResumeText = text
		}
	}
	return result, nil
}

func (s *resumeAnalysisService) GetAnalysis(ctx context.Context, id string) (*dto.ResumeAnalysisResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.Validation("Invalid analysis ID format")
	}
	analysis, err := s.repo.FindByPublicID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumeAnalysisResponse{
		ID:        analysis.PublicID,
		FileName:  analysis.FileName,
		CreatedAt: analysis.CreatedAt,
	}
	if err := copier.Copy(&resp.ResumeAnalysisResult, analysis); err != nil {
		return nil, fmt.Errorf("failed to map analysis: %w", err)
	}
	if err := decodeAnalysisJSON(analysis, &resp.ResumeAnalysisResult); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *resumeAnalysisService) GetResumeFile(ctx context.Context, id string) (*ResumeFile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.Validation("Invalid analysis ID format")
	}
	analysis, err := s.repo.FindByPublicID(ctx, id)
	if err != nil {
		return nil, err
	}
	if analysis.StorageKey == nil {
		return nil, repository.ErrNotFound
	}
	data, err := s.store.Get(ctx, *analysis.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume %s: %w", analysis.PublicID, err)
	}
	return &ResumeFile{FileName: analysis.FileName, ContentType: analysis.ContentType, Data: data}, nil
}

func analysisPrompt(jobDescription, resumeText string) string {
	var b strings.Builder
	b.WriteString("You are an expert resume analyzer and ATS (Applicant Tracking System) specialist. ")
	if resumeText == "" {
		b.WriteString("Analyze the attached PDF resume against the job description comprehensively.\n\n")
	} else {
		b.WriteString("Analyze the resume below against the job description comprehensively.\n\nResume:\n")
		b.WriteString(resumeText)
		b.WriteString("\n\n")
	}
	b.WriteString("Job Description:\n")
	b.WriteString(jobDescription)
	b.WriteString(`

Provide the output in VALID JSON format (no markdown):
{
  "ats_score": <number 0-100, overall ATS compatibility>,
  "keyword_score": <number 0-100, how well keywords match>,
  "format_score": <number 0-100, formatting and structure quality>,
  "experience_score": <number 0-100, experience alignment>,
  "skills_score": <number 0-100, skills match percentage>,
  "missing_keywords": [<list of important missing keywords as strings>],
  "section_feedback": {
    "summary": "<feedback on summary/objective section>",
    "experience": "<feedback on experience section>",
    "skills": "<feedback on skills section>",
    "education": "<feedback on education section>"
  },
  "recommendations": [
    {
      "priority": "<high|medium|low>",
      "title": "<short recommendation title>",
      "description": "<actionable recommendation description>"
    }
  ],
  "summary_feedback": "<overall 2-3 sentence summary of the resume quality>",
  "extracted_resume_text": "<full text content extracted from the PDF resume>"
}`)
	return b.String()
}

func decodeAnalysis(raw []byte) (*dto.ResumeAnalysisResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, apperror.Malformed("analysis is not a JSON object", err)
	}
	for _, name := range analysisRequiredFields {
		if v, ok := fields[name]; !ok || string(v) == "null" {
			return nil, apperror.Malformed(fmt.Sprintf("analysis is missing %q", name), nil)
		}
	}

	var result dto.ResumeAnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperror.Malformed("analysis fields have the wrong type", err)
	}
	for _, score := range []*float64{&result.ATSScore, &result.KeywordScore, &result.FormatScore, &result.ExperienceScore, &result.SkillsScore} {
		*score = math.Max(0, math.Min(100, math.Round(*score)))
	}
	if result.MissingKeywords == nil {
		result.MissingKeywords = []string{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []dto.Recommendation{}
	}
	for i := range result.Recommendations {
		switch p := strings.ToLower(result.Recommendations[i].Priority); p {
		case "high", "medium", "low":
			result.Recommendations[i].Priority = p
		default:
			result.Recommendations[i].Priority = "medium"
		}
	}
	return &result, nil
}

func encodeAnalysisJSON(m *model.ResumeAnalysis, r *dto.ResumeAnalysisResult) error {
	var err error
	if m.MissingKeywordsJSON, err = json.Marshal(r.MissingKeywords); err != nil {
		return fmt.Errorf("failed to encode missing keywords: %w", err)
	}
	if m.SectionFeedbackJSON, err = json.Marshal(r.SectionFeedback); err != nil {
		return fmt.Errorf("failed to encode section feedback: %w", err)
	}
	if m.RecommendationsJSON, err = json.Marshal(r.Recommendations); err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}
	return nil
}

func decodeAnalysisJSON(m *model.ResumeAnalysis, r *dto.ResumeAnalysisResult) error {
	var errs []error
	if len(m.MissingKeywordsJSON) > 0 {
		errs = append(errs, json.Unmarshal(m.MissingKeywordsJSON, &r.MissingKeywords))
	}
	if len(m.SectionFeedbackJSON) > 0 {
		errs = append(errs, json.Unmarshal(m.SectionFeedbackJSON, &r.SectionFeedback))
	}
	if len(m.RecommendationsJSON) > 0 {
		errs = append(errs, json.Unmarshal(m.RecommendationsJSON, &r.Recommendations))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to decode stored analysis %s: %w", m.PublicID, err)
	}
	return nil
}

// cacheKey identifies a (resume, job description) pair. The first 64 hex
// characters are the hash of the file alone.
func cacheKey(data []byte, jobDescription string) string {
	file := sha256.Sum256(data)
	jd := sha256.Sum256([]byte(strings.TrimSpace(jobDescription)))
	return hex.EncodeToString(file[:]) + hex.EncodeToString(jd[:8])
}
