package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/surveyportal/surveyportal/internal/controller"
	"github.com/surveyportal/surveyportal/internal/service"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// GetStatistics godoc
// @Summary (Reporting) Get aggregated answer distribution for a survey
// @Description Counts per answer bucket; choice answers resolve to the live option label
// @Tags Reporting
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.SurveyStatisticsResponse
// @Failure 403 {object} dto.ErrorResponse "Caller lacks the reporting role"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /reports/surveys/{id}/statistics [get]
func (c *ReportController) GetStatistics(ctx *gin.Context) {
	surveyID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	stats, err := c.reportService.Statistics(surveyID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// GetParticipants godoc
// @Summary (Reporting) List participants of a survey
// @Tags Reporting
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {array} dto.ParticipantResponse
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /reports/surveys/{id}/participants [get]
func (c *ReportController) GetParticipants(ctx *gin.Context) {
	surveyID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	participants, err := c.reportService.Participants(surveyID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, participants)
}

// GetParticipantAnswers godoc
// @Summary (Reporting) Get one participant's answers
// @Tags Reporting
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participation ID"
// @Success 200 {array} dto.ParticipantAnswerResponse
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Router /reports/participations/{id}/answers [get]
func (c *ReportController) GetParticipantAnswers(ctx *gin.Context) {
	participationID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	answers, err := c.reportService.ParticipantAnswers(participationID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answers)
}
