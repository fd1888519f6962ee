package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/internal/controller"
	"github.com/surveyportal/surveyportal/internal/dto"
	"github.com/surveyportal/surveyportal/internal/middleware"
	"github.com/surveyportal/surveyportal/internal/service"
)

type SurveyAdminController struct {
	adminService    service.AdminSurveyService
	documentService service.DocumentService
}

func NewSurveyAdminController(adminService service.AdminSurveyService, documentService service.DocumentService) *SurveyAdminController {
	return &SurveyAdminController{
		adminService:    adminService,
		documentService: documentService,
	}
}

// CreateSurvey godoc
// @Summary (Management) Create a survey with questions and target departments
// @Tags Management - Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey body dto.SurveyCreateRequest true "Survey payload"
// @Success 201 {object} dto.SurveyCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or unparseable window"
// @Failure 403 {object} dto.ErrorResponse "Caller lacks the management role"
// @Router /management/surveys [post]
func (c *SurveyAdminController) CreateSurvey(ctx *gin.Context) {
	var req dto.SurveyCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateSurvey: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	identity := middleware.CurrentIdentity(ctx)
	resp, err := c.adminService.Create(identity, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateSurvey godoc
// @Summary (Management) Update a survey, reconciling departments, questions and options
// @Tags Management - Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param survey body dto.SurveyUpdateRequest true "Survey payload"
// @Success 204 "Updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /management/surveys/{id} [put]
func (c *SurveyAdminController) UpdateSurvey(ctx *gin.Context) {
	surveyID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SurveyUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Uint("survey_id", surveyID).Msg("UpdateSurvey: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.adminService.Update(surveyID, req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteSurvey godoc
// @Summary (Management) Soft-delete a survey
// @Tags Management - Surveys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /management/surveys/{id} [delete]
func (c *SurveyAdminController) DeleteSurvey(ctx *gin.Context) {
	surveyID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.Delete(surveyID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddQuestion godoc
// @Summary (Management) Add a question to an existing survey
// @Tags Management - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param question body dto.QuestionCreateRequest true "Question payload"
// @Success 201 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /management/surveys/{id}/questions [post]
func (c *SurveyAdminController) AddQuestion(ctx *gin.Context) {
	surveyID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminService.AddQuestion(surveyID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateQuestion godoc
// @Summary (Management) Update a question and reconcile its options
// @Tags Management - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param question body dto.QuestionUpdateRequest true "Question payload"
// @Success 204 "Updated"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /management/questions/{id} [put]
func (c *SurveyAdminController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.QuestionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.adminService.UpdateQuestion(questionID, req); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteQuestion godoc
// @Summary (Management) Soft-delete a question
// @Tags Management - Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /management/questions/{id} [delete]
func (c *SurveyAdminController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.DeleteQuestion(questionID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// UploadSurveyDocument godoc
// @Summary (Management) Attach a document to a survey
// @Tags Management - Documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param file formData file true "Document file"
// @Success 200 {object} dto.DocumentUploadResponse
// @Failure 400 {object} dto.ErrorResponse "No file in the request"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /management/surveys/{id}/document [post]
func (c *SurveyAdminController) UploadSurveyDocument(ctx *gin.Context) {
	surveyID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing file field", Details: []string{err.Error()}})
		return
	}

	resp, err := c.documentService.AttachToSurvey(ctx, surveyID, file)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UploadQuestionDocument godoc
// @Summary (Management) Attach a document to a question
// @Tags Management - Documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param file formData file true "Document file"
// @Success 200 {object} dto.DocumentUploadResponse
// @Failure 400 {object} dto.ErrorResponse "No file in the request"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /management/questions/{id}/document [post]
func (c *SurveyAdminController) UploadQuestionDocument(ctx *gin.Context) {
	questionID, ok := controller.UintParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing file field", Details: []string{err.Error()}})
		return
	}

	resp, err := c.documentService.AttachToQuestion(ctx, questionID, file)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
