package repository

import (
	"github.com/surveyportal/surveyportal/internal/model"
	"gorm.io/gorm"
)

// AnswerAggregateRow is one joined answer row for reporting: the answer text
// resolves to the live option label when the answer references an option.
type AnswerAggregateRow struct {
	QuestionID    uint
	QuestionTitle string
	QuestionType  int
	Answer        string
	OptionID      *uint
	Count         int64
}

type AnswerRepository interface {
	FindByParticipationID(participationID uint) ([]model.Answer, error)
	FindDistribution(surveyID uint) ([]AnswerAggregateRow, error)
	FindByParticipationJoined(participationID uint) ([]AnswerAggregateRow, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByParticipationID(participationID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("participation_id = ?", participationID).Order("question_id ASC").Find(&answers).Error
	return answers, err
}

func (r *answerRepository) FindDistribution(surveyID uint) ([]AnswerAggregateRow, error) {
	var rows []AnswerAggregateRow
	err := r.db.Raw(`
		SELECT q.id AS question_id, q.title AS question_title, q.type AS question_type,
		       COALESCE(o.label, a.value) AS answer, a.option_id, COUNT(*) AS count
		FROM answers a
		JOIN questions q ON a.question_id = q.id
		LEFT JOIN options o ON a.option_id = o.id
		WHERE a.survey_id = ?
		GROUP BY q.id, q.title, q.type, a.value, a.option_id, o.label
		ORDER BY q.id ASC, count DESC`, surveyID).
		Scan(&rows).Error
	return rows, err
}

func (r *answerRepository) FindByParticipationJoined(participationID uint) ([]AnswerAggregateRow, error) {
	var rows []AnswerAggregateRow
	err := r.db.Raw(`
		SELECT q.id AS question_id, q.title AS question_title, q.type AS question_type,
		       COALESCE(o.label, a.value) AS answer, a.option_id, 1 AS count
		FROM answers a
		JOIN questions q ON a.question_id = q.id
		LEFT JOIN options o ON a.option_id = o.id
		WHERE a.participation_id = ?
		ORDER BY q.id ASC`, participationID).
		Scan(&rows).Error
	return rows, err
}
