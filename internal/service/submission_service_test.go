package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/auth"
	"github.com/surveyportal/surveyportal/internal/dto"
	"github.com/surveyportal/surveyportal/internal/model"
	"github.com/surveyportal/surveyportal/internal/repository"
	"gorm.io/gorm"
)

type mockSurveyRepo struct{ mock.Mock }

func (m *mockSurveyRepo) FindByID(id uint) (*model.Survey, error) {
	args := m.Called(id)
	if s := args.Get(0); s != nil {
		return s.(*model.Survey), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSurveyRepo) FindByIDWithQuestions(id uint) (*model.Survey, error) {
	args := m.Called(id)
	if s := args.Get(0); s != nil {
		return s.(*model.Survey), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSurveyRepo) FindAll() ([]model.Survey, error) {
	args := m.Called()
	return args.Get(0).([]model.Survey), args.Error(1)
}

func (m *mockSurveyRepo) FindByIDs(ids []uint) ([]model.Survey, error) {
	args := m.Called(ids)
	return args.Get(0).([]model.Survey), args.Error(1)
}

func (m *mockSurveyRepo) FindOpen() ([]model.Survey, error) {
	args := m.Called()
	return args.Get(0).([]model.Survey), args.Error(1)
}

func (m *mockSurveyRepo) SetClosed(ids []uint) error {
	return m.Called(ids).Error(0)
}

func (m *mockSurveyRepo) SoftDelete(id uint) error {
	return m.Called(id).Error(0)
}

type mockParticipationRepo struct{ mock.Mock }

func (m *mockParticipationRepo) FindByID(id uint) (*model.Participation, error) {
	args := m.Called(id)
	if p := args.Get(0); p != nil {
		return p.(*model.Participation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) FindByUserAndSurvey(userID, surveyID uint) (*model.Participation, error) {
	args := m.Called(userID, surveyID)
	if p := args.Get(0); p != nil {
		return p.(*model.Participation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) FindSurveyIDsByUser(userID uint) ([]uint, error) {
	args := m.Called(userID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockParticipationRepo) FindByUser(userID uint) ([]model.Participation, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Participation), args.Error(1)
}

func (m *mockParticipationRepo) FindBySurveyID(surveyID uint) ([]model.Participation, error) {
	args := m.Called(surveyID)
	return args.Get(0).([]model.Participation), args.Error(1)
}

func (m *mockParticipationRepo) CountBySurveyID(surveyID uint) (int64, error) {
	args := m.Called(surveyID)
	return args.Get(0).(int64), args.Error(1)
}

type mockAnswerRepo struct{ mock.Mock }

func (m *mockAnswerRepo) FindByParticipationID(participationID uint) ([]model.Answer, error) {
	args := m.Called(participationID)
	return args.Get(0).([]model.Answer), args.Error(1)
}

func (m *mockAnswerRepo) FindDistribution(surveyID uint) ([]repository.AnswerAggregateRow, error) {
	args := m.Called(surveyID)
	return args.Get(0).([]repository.AnswerAggregateRow), args.Error(1)
}

func (m *mockAnswerRepo) FindByParticipationJoined(participationID uint) ([]repository.AnswerAggregateRow, error) {
	args := m.Called(participationID)
	return args.Get(0).([]repository.AnswerAggregateRow), args.Error(1)
}

func optPtr(v uint) *uint { return &v }

func surveyFixture() *model.Survey {
	return &model.Survey{
		ID:    1,
		Title: "Quarterly climate",
		Questions: []model.Question{
			{
				ID:         10,
				SurveyID:   1,
				Type:       model.QuestionSingleSelect,
				Imperative: true,
				Options: []model.Option{
					{ID: 100, QuestionID: 10, Label: "Yes"},
					{ID: 101, QuestionID: 10, Label: "No"},
				},
			},
			{ID: 11, SurveyID: 1, Type: model.QuestionFreeText},
		},
	}
}

func TestSubmit_SurveyNotFound(t *testing.T) {
	surveyRepo := new(mockSurveyRepo)
	surveyRepo.On("FindByIDWithQuestions", uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewSubmissionService(surveyRepo, new(mockParticipationRepo), new(mockAnswerRepo), nil)
	_, err := svc.Submit(auth.Identity{ID: 5}, 99, dto.SubmissionRequest{})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	surveyRepo.AssertExpectations(t)
}

func TestSubmit_MissingRequiredAnswer(t *testing.T) {
	surveyRepo := new(mockSurveyRepo)
	surveyRepo.On("FindByIDWithQuestions", uint(1)).Return(surveyFixture(), nil)

	svc := NewSubmissionService(surveyRepo, new(mockParticipationRepo), new(mockAnswerRepo), nil)
	_, err := svc.Submit(auth.Identity{ID: 5}, 1, dto.SubmissionRequest{
		Answers: []dto.AnswerPayload{{QuestionID: 11, Value: "only the optional one"}},
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestSubmit_UnchangedResubmissionIsRejected(t *testing.T) {
	surveyRepo := new(mockSurveyRepo)
	surveyRepo.On("FindByIDWithQuestions", uint(1)).Return(surveyFixture(), nil)

	participationRepo := new(mockParticipationRepo)
	participationRepo.On("FindByUserAndSurvey", uint(5), uint(1)).
		Return(&model.Participation{ID: 42, SurveyID: 1, UserID: 5}, nil)

	answerRepo := new(mockAnswerRepo)
	answerRepo.On("FindByParticipationID", uint(42)).Return([]model.Answer{
		{ParticipationID: 42, QuestionID: 10, OptionID: optPtr(100), Value: "Yes"},
		{ParticipationID: 42, QuestionID: 11, Value: "all good"},
	}, nil)

	svc := NewSubmissionService(surveyRepo, participationRepo, answerRepo, nil)
	_, err := svc.Submit(auth.Identity{ID: 5, Name: "Someone"}, 1, dto.SubmissionRequest{
		Answers: []dto.AnswerPayload{
			{QuestionID: 10, OptionID: optPtr(100)},
			{QuestionID: 11, Value: "all good"},
		},
	})

	assert.ErrorIs(t, err, apperror.ErrNoChange)
	answerRepo.AssertExpectations(t)
}

func TestSubmit_StaleLabelFailsRequiredCheckWithoutRechoosing(t *testing.T) {
	// The stored choice points at option 100, but the option has been
	// relabeled since; a client replaying the old label-less selection for
	// an unknown option contributes nothing.
	surveyRepo := new(mockSurveyRepo)
	surveyRepo.On("FindByIDWithQuestions", uint(1)).Return(surveyFixture(), nil)

	svc := NewSubmissionService(surveyRepo, new(mockParticipationRepo), new(mockAnswerRepo), nil)
	_, err := svc.Submit(auth.Identity{ID: 5}, 1, dto.SubmissionRequest{
		Answers: []dto.AnswerPayload{
			{QuestionID: 10, OptionID: optPtr(999)}, // option no longer exists
		},
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
