package repository

import (
	"github.com/surveyportal/surveyportal/internal/model"
	"gorm.io/gorm"
)

type SurveyRepository interface {
	FindByID(id uint) (*model.Survey, error)
	FindByIDWithQuestions(id uint) (*model.Survey, error)
	FindAll() ([]model.Survey, error)
	FindByIDs(ids []uint) ([]model.Survey, error)
	FindOpen() ([]model.Survey, error)
	SetClosed(ids []uint) error
	SoftDelete(id uint) error
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) FindByID(id uint) (*model.Survey, error) {
	var s model.Survey
	if err := r.db.Preload("Creator").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *surveyRepository) FindByIDWithQuestions(id uint) (*model.Survey, error) {
	var s model.Survey
	err := r.db.
		Preload("Creator").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id ASC")
		}).
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *surveyRepository) FindAll() ([]model.Survey, error) {
	var surveys []model.Survey
	// Newest first is a fixed ordering contract for listings.
	err := r.db.Preload("Creator").Order("id DESC").Find(&surveys).Error
	return surveys, err
}

func (r *surveyRepository) FindByIDs(ids []uint) ([]model.Survey, error) {
	var surveys []model.Survey
	if len(ids) == 0 {
		return surveys, nil
	}
	err := r.db.Preload("Creator").Where("id IN ?", ids).Order("id DESC").Find(&surveys).Error
	return surveys, err
}

func (r *surveyRepository) FindOpen() ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.db.Where("open = ?", true).Find(&surveys).Error
	return surveys, err
}

func (r *surveyRepository) SetClosed(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&model.Survey{}).Where("id IN ?", ids).Update("open", false).Error
}

func (r *surveyRepository) SoftDelete(id uint) error {
	return r.db.Delete(&model.Survey{}, id).Error
}
