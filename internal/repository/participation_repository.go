package repository

import (
	"github.com/surveyportal/surveyportal/internal/model"
	"gorm.io/gorm"
)

type ParticipationRepository interface {
	FindByID(id uint) (*model.Participation, error)
	FindByUserAndSurvey(userID, surveyID uint) (*model.Participation, error)
	FindSurveyIDsByUser(userID uint) ([]uint, error)
	FindByUser(userID uint) ([]model.Participation, error)
	FindBySurveyID(surveyID uint) ([]model.Participation, error)
	CountBySurveyID(surveyID uint) (int64, error)
}

type participationRepository struct {
	db *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepository{db: db}
}

func (r *participationRepository) FindByID(id uint) (*model.Participation, error) {
	var p model.Participation
	if err := r.db.Preload("User").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participationRepository) FindByUserAndSurvey(userID, surveyID uint) (*model.Participation, error) {
	var p model.Participation
	err := r.db.Where("user_id = ? AND survey_id = ?", userID, surveyID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participationRepository) FindSurveyIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Participation{}).
		Where("user_id = ?", userID).
		Pluck("survey_id", &ids).Error
	return ids, err
}

func (r *participationRepository) FindByUser(userID uint) ([]model.Participation, error) {
	var participations []model.Participation
	err := r.db.Where("user_id = ?", userID).Find(&participations).Error
	return participations, err
}

func (r *participationRepository) FindBySurveyID(surveyID uint) ([]model.Participation, error) {
	var participations []model.Participation
	err := r.db.Preload("User").
		Where("survey_id = ?", surveyID).
		Order("created_at DESC").
		Find(&participations).Error
	return participations, err
}

func (r *participationRepository) CountBySurveyID(surveyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Participation{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}
