package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/auth"
	"github.com/surveyportal/surveyportal/internal/dto"
	"github.com/surveyportal/surveyportal/internal/model"
	"github.com/surveyportal/surveyportal/internal/repository"
	"github.com/surveyportal/surveyportal/internal/survey"
	"gorm.io/gorm"
)

type SurveyQueryService interface {
	List(identity auth.Identity) ([]dto.SurveySummaryResponse, error)
	ListAssigned(identity auth.Identity) ([]dto.SurveySummaryResponse, error)
	ListParticipated(identity auth.Identity) ([]dto.ParticipatedSurveyResponse, error)
	Detail(identity auth.Identity, surveyID uint) (*dto.SurveyDetailResponse, error)
	Departments() ([]dto.DepartmentResponse, error)
}

type surveyQueryService struct {
	surveyRepo        repository.SurveyRepository
	participationRepo repository.ParticipationRepository
	answerRepo        repository.AnswerRepository
	departmentRepo    repository.DepartmentRepository
	documentRepo      repository.DocumentRepository
}

func NewSurveyQueryService(
	surveyRepo repository.SurveyRepository,
	participationRepo repository.ParticipationRepository,
	answerRepo repository.AnswerRepository,
	departmentRepo repository.DepartmentRepository,
	documentRepo repository.DocumentRepository,
) SurveyQueryService {
	return &surveyQueryService{
		surveyRepo:        surveyRepo,
		participationRepo: participationRepo,
		answerRepo:        answerRepo,
		departmentRepo:    departmentRepo,
		documentRepo:      documentRepo,
	}
}

// closeExpiredSurveys flips the stored open flag of surveys whose window has
// passed. Best effort: a failure is logged and never fails the read that
// triggered it, because status is always recomputed from timestamps anyway.
func (s *surveyQueryService) closeExpiredSurveys() {
	open, err := s.surveyRepo.FindOpen()
	if err != nil {
		log.Warn().Err(err).Msg("Expiry sweep: could not load open surveys, skipping")
		return
	}

	now := time.Now()
	var expired []uint
	for i := range open {
		if survey.WindowExpiredAt(&open[i], now) {
			expired = append(expired, open[i].ID)
		}
	}
	if len(expired) == 0 {
		return
	}
	if err := s.surveyRepo.SetClosed(expired); err != nil {
		log.Warn().Err(err).Uints("survey_ids", expired).Msg("Expiry sweep: could not close surveys, skipping")
		return
	}
	log.Info().Uints("survey_ids", expired).Msg("Expiry sweep: closed surveys past their finish instant")
}

func (s *surveyQueryService) List(identity auth.Identity) ([]dto.SurveySummaryResponse, error) {
	return s.list(identity, identity.Capabilities().PrivilegedLister)
}

// ListAssigned lists the surveys the identity can participate in: always the
// department-scoped view, even for privileged listers.
func (s *surveyQueryService) ListAssigned(identity auth.Identity) ([]dto.SurveySummaryResponse, error) {
	return s.list(identity, false)
}

func (s *surveyQueryService) list(identity auth.Identity, privileged bool) ([]dto.SurveySummaryResponse, error) {
	s.closeExpiredSurveys()

	surveys, err := s.surveyRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("List surveys: repository error")
		return nil, fmt.Errorf("fetching surveys: %w", err)
	}

	annotated, err := s.annotate(identity, surveys)
	if err != nil {
		return nil, err
	}

	memberDepts, err := s.memberDeptSet(identity.ID)
	if err != nil {
		return nil, err
	}

	visible := survey.VisibleTo(privileged, memberDepts, annotated, time.Now())

	summaries := make([]dto.SurveySummaryResponse, 0, len(visible))
	for i := range visible {
		summaries = append(summaries, s.toSummary(&visible[i]))
	}
	return summaries, nil
}

func (s *surveyQueryService) ListParticipated(identity auth.Identity) ([]dto.ParticipatedSurveyResponse, error) {
	participations, err := s.participationRepo.FindByUser(identity.ID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", identity.ID).Msg("List participated: repository error")
		return nil, fmt.Errorf("fetching participations: %w", err)
	}

	byID := make(map[uint]model.Participation, len(participations))
	ids := make([]uint, 0, len(participations))
	for _, p := range participations {
		byID[p.SurveyID] = p
		ids = append(ids, p.SurveyID)
	}

	surveys, err := s.surveyRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("fetching participated surveys: %w", err)
	}

	annotated, err := s.annotate(identity, surveys)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ParticipatedSurveyResponse, 0, len(annotated))
	for i := range annotated {
		p := byID[annotated[i].ID]
		responses = append(responses, dto.ParticipatedSurveyResponse{
			SurveySummaryResponse: s.toSummary(&annotated[i]),
			ParticipatedAt:        p.CreatedAt,
			LastUpdatedAt:         p.UpdatedAt,
		})
	}
	return responses, nil
}

func (s *surveyQueryService) Detail(identity auth.Identity, surveyID uint) (*dto.SurveyDetailResponse, error) {
	s.closeExpiredSurveys()

	surv, err := s.surveyRepo.FindByIDWithQuestions(surveyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Uint("survey_id", surveyID).Msg("Survey detail: repository error")
		return nil, fmt.Errorf("fetching survey %d: %w", surveyID, err)
	}

	departments, err := s.departmentRepo.FindBySurveyID(surveyID)
	if err != nil {
		return nil, fmt.Errorf("fetching survey departments: %w", err)
	}

	participated := false
	var existingAnswers []dto.AnswerResponse
	participation, err := s.participationRepo.FindByUserAndSurvey(identity.ID, surveyID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetching participation: %w", err)
	}
	if participation != nil {
		participated = true
		answers, err := s.answerRepo.FindByParticipationID(participation.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching existing answers: %w", err)
		}
		for _, a := range answers {
			existingAnswers = append(existingAnswers, dto.AnswerResponse{
				ID:         a.ID,
				QuestionID: a.QuestionID,
				Value:      a.Value,
				OptionID:   a.OptionID,
			})
		}
	}

	questionIDs := make([]uint, 0, len(surv.Questions))
	for _, q := range surv.Questions {
		questionIDs = append(questionIDs, q.ID)
	}
	questionDocs, err := s.documentRepo.FindURLsByOwners(model.DocumentQuestion, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching question documents: %w", err)
	}
	surveyDoc, err := s.documentRepo.FindURL(model.DocumentSurvey, surveyID)
	if err != nil {
		return nil, fmt.Errorf("fetching survey document: %w", err)
	}

	questions := make([]dto.QuestionResponse, 0, len(surv.Questions))
	for _, q := range surv.Questions {
		var qResp dto.QuestionResponse
		if err := copier.Copy(&qResp, &q); err != nil {
			return nil, fmt.Errorf("preparing question response: %w", err)
		}
		if url, ok := questionDocs[q.ID]; ok {
			u := url
			qResp.DocumentURL = &u
		}
		questions = append(questions, qResp)
	}

	annotatedSurvey := survey.Annotated{
		Survey:      *surv,
		CreatorName: surv.Creator.Name,
		Completed:   participated,
		Departments: departments,
	}

	return &dto.SurveyDetailResponse{
		Survey:          s.toSummary(&annotatedSurvey),
		DocumentURL:     surveyDoc,
		Questions:       questions,
		Participated:    participated,
		ExistingAnswers: existingAnswers,
		Departments:     toDepartmentResponses(departments),
	}, nil
}

func (s *surveyQueryService) Departments() ([]dto.DepartmentResponse, error) {
	departments, err := s.departmentRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("List departments: repository error")
		return nil, fmt.Errorf("fetching departments: %w", err)
	}
	return toDepartmentResponses(departments), nil
}

// annotate attaches listing metadata (creator name, completion, target
// departments) to raw survey rows.
func (s *surveyQueryService) annotate(identity auth.Identity, surveys []model.Survey) ([]survey.Annotated, error) {
	ids := make([]uint, 0, len(surveys))
	for _, sv := range surveys {
		ids = append(ids, sv.ID)
	}

	deptIDs, err := s.departmentRepo.FindIDsBySurveyIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("fetching survey departments: %w", err)
	}

	completedIDs, err := s.participationRepo.FindSurveyIDsByUser(identity.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching participations: %w", err)
	}
	completed := make(map[uint]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	allDepartments, err := s.departmentRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching departments: %w", err)
	}
	deptByID := make(map[uint]model.Department, len(allDepartments))
	for _, d := range allDepartments {
		deptByID[d.ID] = d
	}

	annotated := make([]survey.Annotated, 0, len(surveys))
	for _, sv := range surveys {
		_, done := completed[sv.ID]
		targets := deptIDs[sv.ID]
		departments := make([]model.Department, 0, len(targets))
		for _, id := range targets {
			if d, ok := deptByID[id]; ok {
				departments = append(departments, d)
			}
		}
		annotated = append(annotated, survey.Annotated{
			Survey:        sv,
			CreatorName:   sv.Creator.Name,
			Completed:     done,
			DepartmentIDs: targets,
			Departments:   departments,
		})
	}
	return annotated, nil
}

func (s *surveyQueryService) memberDeptSet(userID uint) (map[uint]struct{}, error) {
	ids, err := s.departmentRepo.FindActiveMemberDeptIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching department memberships: %w", err)
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *surveyQueryService) toSummary(a *survey.Annotated) dto.SurveySummaryResponse {
	var resp dto.SurveySummaryResponse
	if err := copier.Copy(&resp, &a.Survey); err != nil {
		log.Warn().Err(err).Uint("survey_id", a.ID).Msg("Could not copy survey to summary response")
	}
	resp.Status = string(survey.Classify(&a.Survey))
	resp.CreatorName = a.CreatorName
	resp.Completed = a.Completed
	resp.Departments = toDepartmentResponses(a.Departments)
	return resp
}

func toDepartmentResponses(departments []model.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, dto.DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	return responses
}
