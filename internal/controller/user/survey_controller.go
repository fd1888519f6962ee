package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/internal/controller"
	"github.com/surveyportal/surveyportal/internal/dto"
	"github.com/surveyportal/surveyportal/internal/middleware"
	"github.com/surveyportal/surveyportal/internal/service"
)

type SurveyController struct {
	queryService      service.SurveyQueryService
	submissionService service.SubmissionService
}

func NewSurveyController(queryService service.SurveyQueryService, submissionService service.SubmissionService) *SurveyController {
	return &SurveyController{
		queryService:      queryService,
		submissionService: submissionService,
	}
}

// ListSurveys godoc
// @Summary List surveys visible to the caller
// @Description Management and reporting roles see every survey; everyone else sees active surveys targeted at their departments
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SurveySummaryResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /surveys [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)
	surveys, err := c.queryService.List(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, surveys)
}

// ListAssignedSurveys godoc
// @Summary List surveys the caller can participate in
// @Description The department-scoped active view, regardless of the caller's roles
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SurveySummaryResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /surveys/assigned [get]
func (c *SurveyController) ListAssignedSurveys(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)
	surveys, err := c.queryService.ListAssigned(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, surveys)
}

// ListParticipatedSurveys godoc
// @Summary List surveys the caller has answered
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ParticipatedSurveyResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /surveys/participated [get]
func (c *SurveyController) ListParticipatedSurveys(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)
	surveys, err := c.queryService.ListParticipated(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, surveys)
}

// GetSurvey godoc
// @Summary Get one survey with its questions and the caller's answers
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.SurveyDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	surveyID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}

	identity := middleware.CurrentIdentity(ctx)
	detail, err := c.queryService.Detail(identity, surveyID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// SubmitAnswers godoc
// @Summary Submit or resubmit the caller's answers for a survey
// @Description Validates required questions, rejects unchanged resubmissions with 409, and replaces the stored answer set atomically
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param submission body dto.SubmissionRequest true "Full answer set"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Missing required answers or invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Failure 409 {object} dto.ErrorResponse "No material change against the stored answers"
// @Router /surveys/{id}/answers [post]
func (c *SurveyController) SubmitAnswers(ctx *gin.Context) {
	surveyID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("survey_id", surveyID).Msg("SubmitAnswers: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	identity := middleware.CurrentIdentity(ctx)
	resp, err := c.submissionService.Submit(identity, surveyID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListDepartments godoc
// @Summary List all departments
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.DepartmentResponse
// @Router /departments [get]
func (c *SurveyController) ListDepartments(ctx *gin.Context) {
	departments, err := c.queryService.Departments()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, departments)
}
