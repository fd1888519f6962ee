package repository

import (
	"github.com/surveyportal/surveyportal/internal/model"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	FindAll() ([]model.Department, error)
	FindBySurveyID(surveyID uint) ([]model.Department, error)
	FindIDsBySurveyIDs(surveyIDs []uint) (map[uint][]uint, error)
	FindActiveMemberDeptIDs(userID uint) ([]uint, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) FindAll() ([]model.Department, error) {
	var departments []model.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) FindBySurveyID(surveyID uint) ([]model.Department, error) {
	var departments []model.Department
	err := r.db.
		Joins("JOIN survey_departments sd ON sd.department_id = departments.id").
		Where("sd.survey_id = ? AND sd.deleted_at IS NULL", surveyID).
		Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) FindIDsBySurveyIDs(surveyIDs []uint) (map[uint][]uint, error) {
	byGroup := make(map[uint][]uint, len(surveyIDs))
	if len(surveyIDs) == 0 {
		return byGroup, nil
	}

	var links []model.SurveyDepartment
	if err := r.db.Where("survey_id IN ?", surveyIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	for _, link := range links {
		byGroup[link.SurveyID] = append(byGroup[link.SurveyID], link.DepartmentID)
	}
	return byGroup, nil
}

func (r *departmentRepository) FindActiveMemberDeptIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.DepartmentMember{}).
		Where("user_id = ? AND active = ?", userID, true).
		Pluck("department_id", &ids).Error
	return ids, err
}
