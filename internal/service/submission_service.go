package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/auth"
	"github.com/surveyportal/surveyportal/internal/dto"
	"github.com/surveyportal/surveyportal/internal/model"
	"github.com/surveyportal/surveyportal/internal/repository"
	"github.com/surveyportal/surveyportal/internal/survey"
	"gorm.io/gorm"
)

type SubmissionService interface {
	Submit(identity auth.Identity, surveyID uint, req dto.SubmissionRequest) (*dto.SubmissionResponse, error)
}

type submissionService struct {
	surveyRepo        repository.SurveyRepository
	participationRepo repository.ParticipationRepository
	answerRepo        repository.AnswerRepository
	db                *gorm.DB
}

func NewSubmissionService(
	surveyRepo repository.SurveyRepository,
	participationRepo repository.ParticipationRepository,
	answerRepo repository.AnswerRepository,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		surveyRepo:        surveyRepo,
		participationRepo: participationRepo,
		answerRepo:        answerRepo,
		db:                db,
	}
}

// Submit stores the full answer set of one user for one survey. First
// submissions create the participation; resubmissions must differ materially
// from the stored answers and replace them atomically.
func (s *submissionService) Submit(identity auth.Identity, surveyID uint, req dto.SubmissionRequest) (*dto.SubmissionResponse, error) {
	surv, err := s.surveyRepo.FindByIDWithQuestions(surveyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Uint("survey_id", surveyID).Msg("Submit: survey lookup failed")
		return nil, fmt.Errorf("fetching survey %d: %w", surveyID, err)
	}

	candidate := normalizeAnswers(surv.Questions, req.Answers)

	if err := survey.ValidateRequired(surv.Questions, candidate); err != nil {
		return nil, err
	}

	// Participation existence is the Unanswered/Answered state for this
	// (survey, user) pair. The unique index on (survey_id, user_id) backs
	// this check against concurrent double-submits.
	participation, err := s.participationRepo.FindByUserAndSurvey(identity.ID, surveyID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetching participation: %w", err)
	}

	resubmission := participation != nil
	if resubmission {
		existing, err := s.answerRepo.FindByParticipationID(participation.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching stored answers: %w", err)
		}
		if !survey.HasMaterialChange(surv.Questions, existing, candidate) {
			return nil, apperror.ErrNoChange
		}
	}

	var participationID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if resubmission {
			participationID = participation.ID
			if err := tx.Model(&model.Participation{}).
				Where("id = ?", participation.ID).
				Update("updated_at", time.Now()).Error; err != nil {
				return fmt.Errorf("touching participation: %w", err)
			}
			// Full replace: no partial merge of answer sets.
			if err := tx.Where("participation_id = ?", participation.ID).
				Delete(&model.Answer{}).Error; err != nil {
				return fmt.Errorf("clearing previous answers: %w", err)
			}
		} else {
			created := model.Participation{
				SurveyID: surveyID,
				UserID:   identity.ID,
				UserName: identity.Name,
			}
			if err := tx.Create(&created).Error; err != nil {
				return fmt.Errorf("creating participation: %w", err)
			}
			participationID = created.ID
		}

		rows := make([]model.Answer, 0, len(candidate))
		for _, c := range candidate {
			rows = append(rows, model.Answer{
				ParticipationID: participationID,
				SurveyID:        surveyID,
				QuestionID:      c.QuestionID,
				Value:           c.Value,
				OptionID:        c.OptionID,
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("storing answers: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("survey_id", surveyID).Uint("user_id", identity.ID).Msg("Submit: transaction failed")
		return nil, err
	}

	log.Info().Uint("survey_id", surveyID).Uint("user_id", identity.ID).Bool("resubmission", resubmission).Msg("Submission stored")
	return &dto.SubmissionResponse{ParticipationID: participationID, Updated: resubmission}, nil
}

// normalizeAnswers converts payload rows into the stored answer shape. Rows
// for questions not in the survey are dropped. For choice questions the
// stored value becomes the live option label, so that a later label edit is
// detectable as a stale answer; for linear scale the option is resolved by
// its numeric label.
func normalizeAnswers(questions []model.Question, payload []dto.AnswerPayload) []survey.SubmittedAnswer {
	questionByID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
	}

	candidate := make([]survey.SubmittedAnswer, 0, len(payload))
	for _, row := range payload {
		q, ok := questionByID[row.QuestionID]
		if !ok {
			log.Warn().Uint("question_id", row.QuestionID).Msg("Submit: answer for a question not in this survey, skipping")
			continue
		}

		switch q.Type {
		case model.QuestionMultiSelect, model.QuestionSingleSelect:
			if row.OptionID == nil {
				if q.Type == model.QuestionSingleSelect {
					candidate = append(candidate, survey.SubmittedAnswer{QuestionID: q.ID})
				}
				continue
			}
			label, ok := optionLabel(q, *row.OptionID)
			if !ok {
				log.Warn().Uint("question_id", q.ID).Uint("option_id", *row.OptionID).Msg("Submit: unknown option, skipping")
				continue
			}
			id := *row.OptionID
			candidate = append(candidate, survey.SubmittedAnswer{
				QuestionID: q.ID,
				Value:      label,
				OptionID:   &id,
			})

		case model.QuestionLinearScale:
			value := strings.TrimSpace(row.Value)
			c := survey.SubmittedAnswer{QuestionID: q.ID, Value: value}
			for i := range q.Options {
				if q.Options[i].Label == value {
					id := q.Options[i].ID
					c.OptionID = &id
					break
				}
			}
			candidate = append(candidate, c)

		default:
			candidate = append(candidate, survey.SubmittedAnswer{QuestionID: q.ID, Value: row.Value})
		}
	}
	return candidate
}

func optionLabel(q *model.Question, optionID uint) (string, bool) {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return q.Options[i].Label, true
		}
	}
	return "", false
}
