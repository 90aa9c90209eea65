package resume

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/hirewise/config"
	"github.com/lshigami/hirewise/internal/controller"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/service"
	"github.com/rs/zerolog/log"
)

const multipartMemory = 8 << 20

type ResumeController struct {
	analysisService service.ResumeAnalysisService
	maxUploadBytes  int64
}

func NewResumeController(as service.ResumeAnalysisService, cfg *config.Config) *ResumeController {
	return &ResumeController{analysisService: as, maxUploadBytes: cfg.MaxUploadBytes()}
}

func (c *ResumeController) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/analyze", c.Analyze)
	api.GET("/analyses/:id", c.GetAnalysis)
	api.GET("/analyses/:id/resume", c.DownloadResume)
}

// Analyze godoc
// @Summary Analyze a resume against a job description
// @Description Scores a PDF or DOCX resume for ATS compatibility, keyword, format, experience and skills match, and returns missing keywords, section feedback and prioritized recommendations. Identical uploads are served from cache.
// @Tags Resume
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume file (PDF or DOCX)"
// @Param job_description formData string true "Job description text"
// @Success 200 {object} dto.ResumeAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or unsupported input"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 500 {object} dto.ErrorResponse "Analysis failed"
// @Router /analyze [post]
func (c *ResumeController) Analyze(ctx *gin.Context) {
	if ctx.Request.ContentLength > c.maxUploadBytes {
		tooLarge(ctx)
		return
	}
	// Chunked uploads carry no length, so the limit is enforced while reading.
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes)
	if err := ctx.Request.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			tooLarge(ctx)
			return
		}
		log.Warn().Err(err).Msg("Analyze resume: invalid multipart body")
		controller.BadRequest(ctx, "Resume file and job description are required.")
		return
	}

	jobDescription := ctx.PostForm("job_description")
	fileHeader, err := ctx.FormFile("resume")
	if err != nil {
		controller.BadRequest(ctx, "Resume file and job description are required.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to read uploaded file.")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to read uploaded file.")
		return
	}

	log.Info().Str("file_name", fileHeader.Filename).Int64("size", fileHeader.Size).Msg("Analyze resume request")
	resp, err := c.analysisService.AnalyzeResume(ctx.Request.Context(), fileHeader.Filename, data, jobDescription)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to analyze resume.")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAnalysis godoc
// @Summary Get a stored resume analysis
// @Tags Resume
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} dto.ResumeAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid analysis ID format"
// @Failure 404 {object} dto.ErrorResponse "Analysis not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analyses/{id} [get]
func (c *ResumeController) GetAnalysis(ctx *gin.Context) {
	resp, err := c.analysisService.GetAnalysis(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve analysis.")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DownloadResume godoc
// @Summary Download the resume file of an analysis
// @Tags Resume
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid analysis ID format"
// @Failure 404 {object} dto.ErrorResponse "Analysis or file not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analyses/{id}/resume [get]
func (c *ResumeController) DownloadResume(ctx *gin.Context) {
	file, err := c.analysisService.GetResumeFile(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve resume file.")
		return
	}
	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.FileName}))
	ctx.Data(http.StatusOK, file.ContentType, file.Data)
}

func tooLarge(ctx *gin.Context) {
	ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "Resume file is too large."})
}
