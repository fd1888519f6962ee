package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/dto"
	"github.com/surveyportal/surveyportal/internal/repository"
	"gorm.io/gorm"
)

type ReportService interface {
	Statistics(surveyID uint) (*dto.SurveyStatisticsResponse, error)
	Participants(surveyID uint) ([]dto.ParticipantResponse, error)
	ParticipantAnswers(participationID uint) ([]dto.ParticipantAnswerResponse, error)
}

type reportService struct {
	surveyRepo        repository.SurveyRepository
	participationRepo repository.ParticipationRepository
	answerRepo        repository.AnswerRepository
}

func NewReportService(
	surveyRepo repository.SurveyRepository,
	participationRepo repository.ParticipationRepository,
	answerRepo repository.AnswerRepository,
) ReportService {
	return &reportService{
		surveyRepo:        surveyRepo,
		participationRepo: participationRepo,
		answerRepo:        answerRepo,
	}
}

func (s *reportService) Statistics(surveyID uint) (*dto.SurveyStatisticsResponse, error) {
	if _, err := s.surveyRepo.FindByID(surveyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("fetching survey %d: %w", surveyID, err)
	}

	total, err := s.participationRepo.CountBySurveyID(surveyID)
	if err != nil {
		return nil, fmt.Errorf("counting participants: %w", err)
	}

	rows, err := s.answerRepo.FindDistribution(surveyID)
	if err != nil {
		log.Error().Err(err).Uint("survey_id", surveyID).Msg("Statistics: distribution query failed")
		return nil, fmt.Errorf("aggregating answers: %w", err)
	}

	distribution := make([]dto.AnswerDistributionResponse, 0, len(rows))
	for _, row := range rows {
		distribution = append(distribution, dto.AnswerDistributionResponse{
			QuestionID:    row.QuestionID,
			QuestionTitle: row.QuestionTitle,
			QuestionType:  row.QuestionType,
			Answer:        row.Answer,
			OptionID:      row.OptionID,
			Count:         row.Count,
		})
	}

	return &dto.SurveyStatisticsResponse{
		TotalParticipants: total,
		Distribution:      distribution,
	}, nil
}

func (s *reportService) Participants(surveyID uint) ([]dto.ParticipantResponse, error) {
	if _, err := s.surveyRepo.FindByID(surveyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("fetching survey %d: %w", surveyID, err)
	}

	participations, err := s.participationRepo.FindBySurveyID(surveyID)
	if err != nil {
		return nil, fmt.Errorf("fetching participants: %w", err)
	}

	participants := make([]dto.ParticipantResponse, 0, len(participations))
	for _, p := range participations {
		resp := dto.ParticipantResponse{
			ID:     p.ID,
			UserID: p.UserID,
			// UserName is the snapshot taken at submission time, kept
			// even if the account was renamed since.
			UserName:  p.UserName,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if p.User.ID != 0 {
			resp.EmployeeNo = p.User.EmployeeNo
			resp.UserTitle = p.User.Title
		}
		participants = append(participants, resp)
	}
	return participants, nil
}

func (s *reportService) ParticipantAnswers(participationID uint) ([]dto.ParticipantAnswerResponse, error) {
	if _, err := s.participationRepo.FindByID(participationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("fetching participation %d: %w", participationID, err)
	}

	rows, err := s.answerRepo.FindByParticipationJoined(participationID)
	if err != nil {
		return nil, fmt.Errorf("fetching participant answers: %w", err)
	}

	answers := make([]dto.ParticipantAnswerResponse, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, dto.ParticipantAnswerResponse{
			QuestionID:    row.QuestionID,
			QuestionTitle: row.QuestionTitle,
			QuestionType:  row.QuestionType,
			Answer:        row.Answer,
			OptionID:      row.OptionID,
		})
	}
	return answers, nil
}
