package interview

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/hirewise/internal/controller"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/service"
	"github.com/rs/zerolog/log"
)

type InterviewController struct {
	interviewService service.InterviewService
	historyService   service.InterviewHistoryService
}

func NewInterviewController(is service.InterviewService, hs service.InterviewHistoryService) *InterviewController {
	return &InterviewController{interviewService: is, historyService: hs}
}

func (c *InterviewController) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/interview")
	g.GET("/modes", c.Modes)
	g.POST("/start", c.Start)
	g.POST("/evaluate", c.Evaluate)
	g.POST("/sessions", c.SaveSession)
	g.GET("/sessions", c.ListSessions)
	g.GET("/sessions/:id", c.GetSession)
}

// Modes godoc
// @Summary List interview modes
// @Tags Interview
// @Produce json
// @Success 200 {array} interview.ModeInfo
// @Router /interview/modes [get]
func (c *InterviewController) Modes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.interviewService.Modes())
}

// Start godoc
// @Summary Generate the questions of an interview session
// @Description Generates up to five questions in the chosen mode, tailored to the resume and the job description.
// @Tags Interview
// @Accept json
// @Produce json
// @Param request body dto.StartInterviewRequest true "Resume text, job description and mode"
// @Success 200 {object} dto.StartInterviewResponse
// @Failure 400 {object} dto.ErrorResponse "Missing inputs or unknown mode"
// @Failure 500 {object} dto.ErrorResponse "Question generation failed"
// @Router /interview/start [post]
func (c *InterviewController) Start(ctx *gin.Context) {
	var req dto.StartInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Start interview: invalid request body")
		controller.BadRequest(ctx, "resume_text, job_description, and mode are required.")
		return
	}
	resp, err := c.interviewService.StartInterview(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to generate interview questions.")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Evaluate godoc
// @Summary Evaluate one answer
// @Description Scores an answer with the rubric of the mode. An empty or unrecognized mode is evaluated as communication.
// @Tags Interview
// @Accept json
// @Produce json
// @Param request body dto.EvaluateAnswerRequest true "Question, answer and mode"
// @Success 200 {object} map[string]interface{} "Mode-specific evaluation"
// @Failure 400 {object} dto.ErrorResponse "Missing question or answer"
// @Failure 500 {object} dto.ErrorResponse "Evaluation failed"
// @Router /interview/evaluate [post]
func (c *InterviewController) Evaluate(ctx *gin.Context) {
	var req dto.EvaluateAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Evaluate answer: invalid request body")
		controller.BadRequest(ctx, "question and user_answer are required.")
		return
	}
	eval, err := c.interviewService.Evaluate(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to evaluate answer.")
		return
	}
	ctx.JSON(http.StatusOK, eval)
}

// SaveSession godoc
// @Summary Save a finished interview session
// @Description Stores the answered questions of a session. The summary is recomputed from the evaluations.
// @Tags Interview
// @Accept json
// @Produce json
// @Param request body dto.SaveSessionRequest true "Session results"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interview/sessions [post]
func (c *InterviewController) SaveSession(ctx *gin.Context) {
	var req dto.SaveSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Save session: invalid request body")
		controller.BadRequest(ctx, "Invalid session: "+err.Error())
		return
	}
	resp, err := c.historyService.SaveSession(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to save interview session.")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListSessions godoc
// @Summary List recent interview sessions
// @Tags Interview
// @Produce json
// @Param mode query string false "Only sessions of this mode"
// @Param limit query int false "Maximum number of sessions (default 20, max 100)"
// @Success 200 {array} dto.SessionSummaryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid mode or limit"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interview/sessions [get]
func (c *InterviewController) ListSessions(ctx *gin.Context) {
	limit := 0
	if s := ctx.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			controller.BadRequest(ctx, "Invalid limit")
			return
		}
		limit = n
	}
	sessions, err := c.historyService.ListSessions(ctx.Request.Context(), ctx.Query("mode"), limit)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to list interview sessions.")
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// GetSession godoc
// @Summary Get a stored interview session with its answers
// @Tags Interview
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID format"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interview/sessions/{id} [get]
func (c *InterviewController) GetSession(ctx *gin.Context) {
	resp, err := c.historyService.GetSession(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve interview session.")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
