package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/auth"
	"github.com/surveyportal/surveyportal/internal/dto"
	"github.com/surveyportal/surveyportal/internal/model"
	"github.com/surveyportal/surveyportal/internal/repository"
	"github.com/surveyportal/surveyportal/internal/survey"
	"gorm.io/gorm"
)

type AdminSurveyService interface {
	Create(identity auth.Identity, req dto.SurveyCreateRequest) (*dto.SurveyCreatedResponse, error)
	Update(surveyID uint, req dto.SurveyUpdateRequest) error
	Delete(surveyID uint) error
	AddQuestion(surveyID uint, req dto.QuestionCreateRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(questionID uint, req dto.QuestionUpdateRequest) error
	DeleteQuestion(questionID uint) error
}

type adminSurveyService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	db           *gorm.DB
}

func NewAdminSurveyService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	db *gorm.DB,
) AdminSurveyService {
	return &adminSurveyService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		db:           db,
	}
}

func (s *adminSurveyService) Create(identity auth.Identity, req dto.SurveyCreateRequest) (*dto.SurveyCreatedResponse, error) {
	if err := validateWindow(req.StartDate, req.StartTime, req.FinishDate, req.FinishTime); err != nil {
		return nil, err
	}

	surv := model.Survey{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		StartTime:   req.StartTime,
		FinishDate:  req.FinishDate,
		FinishTime:  req.FinishTime,
		Type:        req.Type,
		CreatorID:   identity.ID,
		Open:        true,
	}
	for _, qp := range req.Questions {
		surv.Questions = append(surv.Questions, questionFromPayload(qp))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&surv).Error; err != nil {
			return fmt.Errorf("creating survey: %w", err)
		}
		for _, deptID := range req.DepartmentIDs {
			link := model.SurveyDepartment{SurveyID: surv.ID, DepartmentID: deptID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("linking department %d: %w", deptID, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Create survey: transaction failed")
		return nil, err
	}

	log.Info().Uint("survey_id", surv.ID).Uint("creator_id", identity.ID).Msg("Survey created")
	return &dto.SurveyCreatedResponse{SurveyID: surv.ID}, nil
}

// Update replaces the survey's scalar fields and reconciles its department
// links and question tree against the payload: stored rows missing from the
// payload are soft-deleted, rows with an ID are updated, rows without one are
// created. All of it happens in one transaction.
func (s *adminSurveyService) Update(surveyID uint, req dto.SurveyUpdateRequest) error {
	if err := validateWindow(req.StartDate, req.StartTime, req.FinishDate, req.FinishTime); err != nil {
		return err
	}

	surv, err := s.surveyRepo.FindByIDWithQuestions(surveyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("fetching survey %d: %w", surveyID, err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Map update so that false booleans are written too.
		fields := map[string]interface{}{
			"title":        req.Title,
			"description":  req.Description,
			"start_date":   req.StartDate,
			"start_time":   req.StartTime,
			"finish_date":  req.FinishDate,
			"finish_time":  req.FinishTime,
			"type":         req.Type,
			"force_active": req.ForceActive,
			"open":         req.Open,
		}
		if err := tx.Model(&model.Survey{}).Where("id = ?", surveyID).Updates(fields).Error; err != nil {
			return fmt.Errorf("updating survey fields: %w", err)
		}

		if err := reconcileDepartments(tx, surveyID, req.DepartmentIDs); err != nil {
			return err
		}
		return reconcileQuestions(tx, surv.Questions, surveyID, req.Questions)
	})
	if err != nil {
		log.Error().Err(err).Uint("survey_id", surveyID).Msg("Update survey: transaction failed")
		return err
	}

	log.Info().Uint("survey_id", surveyID).Msg("Survey updated")
	return nil
}

func (s *adminSurveyService) Delete(surveyID uint) error {
	if _, err := s.surveyRepo.FindByID(surveyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("fetching survey %d: %w", surveyID, err)
	}
	if err := s.surveyRepo.SoftDelete(surveyID); err != nil {
		return fmt.Errorf("deleting survey %d: %w", surveyID, err)
	}
	log.Info().Uint("survey_id", surveyID).Msg("Survey deleted")
	return nil
}

func (s *adminSurveyService) AddQuestion(surveyID uint, req dto.QuestionCreateRequest) (*dto.QuestionResponse, error) {
	if _, err := s.surveyRepo.FindByID(surveyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("fetching survey %d: %w", surveyID, err)
	}

	question := questionFromPayload(dto.QuestionPayload{
		Title:      req.Title,
		Type:       req.Type,
		Imperative: req.Imperative,
		Options:    req.Options,
	})
	question.SurveyID = surveyID

	if err := s.questionRepo.Create(&question); err != nil {
		return nil, fmt.Errorf("creating question: %w", err)
	}

	resp := dto.QuestionResponse{
		ID:         question.ID,
		SurveyID:   question.SurveyID,
		Title:      question.Title,
		Type:       question.Type,
		Imperative: question.Imperative,
	}
	for _, opt := range question.Options {
		resp.Options = append(resp.Options, dto.OptionResponse{ID: opt.ID, Label: opt.Label})
	}
	return &resp, nil
}

func (s *adminSurveyService) UpdateQuestion(questionID uint, req dto.QuestionUpdateRequest) error {
	question, err := s.questionRepo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("fetching question %d: %w", questionID, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{
			"title":      req.Title,
			"type":       req.Type,
			"imperative": req.Imperative,
		}
		if err := tx.Model(&model.Question{}).Where("id = ?", questionID).Updates(fields).Error; err != nil {
			return fmt.Errorf("updating question fields: %w", err)
		}
		return reconcileOptions(tx, question.Options, questionID, req.Options)
	})
}

func (s *adminSurveyService) DeleteQuestion(questionID uint) error {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("fetching question %d: %w", questionID, err)
	}
	return s.questionRepo.SoftDelete(questionID)
}

// validateWindow rejects windows the status classifier could not parse at
// all, so that a survey never starts life expired by accident. Empty times
// default to midnight during classification and pass here.
func validateWindow(startDate, startTime, finishDate, finishTime string) error {
	if _, err := survey.CombineDateTime(startDate, startTime); err != nil {
		return apperror.Validation("start_date", "not a valid date/time")
	}
	if _, err := survey.CombineDateTime(finishDate, finishTime); err != nil {
		return apperror.Validation("finish_date", "not a valid date/time")
	}
	return nil
}

func questionFromPayload(qp dto.QuestionPayload) model.Question {
	question := model.Question{
		Title:      qp.Title,
		Type:       qp.Type,
		Imperative: qp.Imperative,
	}
	for _, op := range qp.Options {
		question.Options = append(question.Options, model.Option{Label: op.Label})
	}
	return question
}

// reconcileDepartments soft-deletes every current link and restores or
// creates the requested ones, preserving link history.
func reconcileDepartments(tx *gorm.DB, surveyID uint, deptIDs []uint) error {
	if err := tx.Where("survey_id = ?", surveyID).Delete(&model.SurveyDepartment{}).Error; err != nil {
		return fmt.Errorf("unlinking departments: %w", err)
	}
	for _, deptID := range deptIDs {
		var existing model.SurveyDepartment
		err := tx.Unscoped().
			Where("survey_id = ? AND department_id = ?", surveyID, deptID).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			link := model.SurveyDepartment{SurveyID: surveyID, DepartmentID: deptID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("linking department %d: %w", deptID, err)
			}
		case err != nil:
			return fmt.Errorf("looking up department link %d: %w", deptID, err)
		default:
			if err := tx.Unscoped().Model(&existing).Update("deleted_at", nil).Error; err != nil {
				return fmt.Errorf("restoring department link %d: %w", deptID, err)
			}
		}
	}
	return nil
}

func reconcileQuestions(tx *gorm.DB, stored []model.Question, surveyID uint, payload []dto.QuestionPayload) error {
	keep := make(map[uint]struct{}, len(payload))
	for _, qp := range payload {
		if qp.ID != nil {
			keep[*qp.ID] = struct{}{}
		}
	}

	for i := range stored {
		if _, ok := keep[stored[i].ID]; ok {
			continue
		}
		if err := tx.Delete(&model.Question{}, stored[i].ID).Error; err != nil {
			return fmt.Errorf("removing question %d: %w", stored[i].ID, err)
		}
	}

	storedByID := make(map[uint]*model.Question, len(stored))
	for i := range stored {
		storedByID[stored[i].ID] = &stored[i]
	}

	for _, qp := range payload {
		if qp.ID == nil {
			question := questionFromPayload(qp)
			question.SurveyID = surveyID
			if err := tx.Create(&question).Error; err != nil {
				return fmt.Errorf("creating question: %w", err)
			}
			continue
		}

		existing, ok := storedByID[*qp.ID]
		if !ok {
			log.Warn().Uint("question_id", *qp.ID).Uint("survey_id", surveyID).Msg("Update survey: unknown question id in payload, skipping")
			continue
		}
		fields := map[string]interface{}{
			"title":      qp.Title,
			"type":       qp.Type,
			"imperative": qp.Imperative,
		}
		if err := tx.Model(&model.Question{}).Where("id = ?", *qp.ID).Updates(fields).Error; err != nil {
			return fmt.Errorf("updating question %d: %w", *qp.ID, err)
		}
		if err := reconcileOptions(tx, existing.Options, *qp.ID, qp.Options); err != nil {
			return err
		}
	}
	return nil
}

func reconcileOptions(tx *gorm.DB, stored []model.Option, questionID uint, payload []dto.OptionPayload) error {
	keep := make(map[uint]struct{}, len(payload))
	for _, op := range payload {
		if op.ID != nil {
			keep[*op.ID] = struct{}{}
		}
	}

	for i := range stored {
		if _, ok := keep[stored[i].ID]; ok {
			continue
		}
		if err := tx.Delete(&model.Option{}, stored[i].ID).Error; err != nil {
			return fmt.Errorf("removing option %d: %w", stored[i].ID, err)
		}
	}

	for _, op := range payload {
		if op.ID == nil {
			option := model.Option{QuestionID: questionID, Label: op.Label}
			if err := tx.Create(&option).Error; err != nil {
				return fmt.Errorf("creating option: %w", err)
			}
			continue
		}
		if err := tx.Model(&model.Option{}).Where("id = ?", *op.ID).Update("label", op.Label).Error; err != nil {
			return fmt.Errorf("updating option %d: %w", *op.ID, err)
		}
	}
	return nil
}
