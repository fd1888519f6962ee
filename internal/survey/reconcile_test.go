package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func multiQuestion(id uint, labels ...string) model.Question {
	q := model.Question{ID: id, Type: model.QuestionMultiSelect}
	for i, label := range labels {
		q.Options = append(q.Options, model.Option{ID: id*100 + uint(i) + 1, QuestionID: id, Label: label})
	}
	return q
}

func singleQuestion(id uint, labels ...string) model.Question {
	q := multiQuestion(id, labels...)
	q.Type = model.QuestionSingleSelect
	return q
}

func storedChoice(questionID, optionID uint, label string) model.Answer {
	return model.Answer{QuestionID: questionID, OptionID: uintPtr(optionID), Value: label}
}

func TestQuestionChanged_MultiSelectSetComparison(t *testing.T) {
	q := multiQuestion(1, "Red", "Green", "Blue") // option ids 101, 102, 103
	existing := []model.Answer{
		storedChoice(1, 101, "Red"),
		storedChoice(1, 103, "Blue"),
	}

	// Same set in a different order is no change.
	same := []SubmittedAnswer{
		{QuestionID: 1, Value: "Blue", OptionID: uintPtr(103)},
		{QuestionID: 1, Value: "Red", OptionID: uintPtr(101)},
	}
	assert.False(t, QuestionChanged(&q, existing, same))

	// A different set is a change.
	different := []SubmittedAnswer{
		{QuestionID: 1, Value: "Green", OptionID: uintPtr(102)},
	}
	assert.True(t, QuestionChanged(&q, existing, different))
}

func TestQuestionChanged_StaleLabelInvalidatesStoredChoice(t *testing.T) {
	q := singleQuestion(2, "Yes", "No") // option ids 201, 202
	// The option was relabeled after this answer was stored.
	stale := []model.Answer{storedChoice(2, 201, "Old yes wording")}

	// Re-picking the same option is now a material change: the stored
	// choice no longer counts.
	repick := []SubmittedAnswer{{QuestionID: 2, Value: "Yes", OptionID: uintPtr(201)}}
	assert.True(t, QuestionChanged(&q, stale, repick))

	// Submitting nothing matches the invalidated stored state.
	assert.False(t, QuestionChanged(&q, stale, nil))
}

func TestQuestionChanged_StaleLabelInMultiSelect(t *testing.T) {
	q := multiQuestion(3, "A", "B") // 301, 302
	existing := []model.Answer{
		storedChoice(3, 301, "A"),
		storedChoice(3, 302, "stale"),
	}
	// Only option 301 survives the label check, so {301} is unchanged.
	assert.False(t, QuestionChanged(&q, existing, []SubmittedAnswer{
		{QuestionID: 3, Value: "A", OptionID: uintPtr(301)},
	}))
}

func TestQuestionChanged_SingleSelect(t *testing.T) {
	q := singleQuestion(4, "Yes", "No") // 401, 402
	existing := []model.Answer{storedChoice(4, 401, "Yes")}

	assert.False(t, QuestionChanged(&q, existing, []SubmittedAnswer{{QuestionID: 4, Value: "Yes", OptionID: uintPtr(401)}}))
	assert.True(t, QuestionChanged(&q, existing, []SubmittedAnswer{{QuestionID: 4, Value: "No", OptionID: uintPtr(402)}}))
	assert.True(t, QuestionChanged(&q, existing, nil))
}

func TestQuestionChanged_LinearScaleComparesNumerically(t *testing.T) {
	q := model.Question{ID: 5, Type: model.QuestionLinearScale}
	existing := []model.Answer{{QuestionID: 5, Value: "3"}}

	assert.False(t, QuestionChanged(&q, existing, []SubmittedAnswer{{QuestionID: 5, Value: "3"}}))
	assert.False(t, QuestionChanged(&q, existing, []SubmittedAnswer{{QuestionID: 5, Value: " 3 "}}))
	assert.True(t, QuestionChanged(&q, existing, []SubmittedAnswer{{QuestionID: 5, Value: "4"}}))
	assert.True(t, QuestionChanged(&q, existing, nil))
}

func TestQuestionChanged_FreeText(t *testing.T) {
	q := model.Question{ID: 6, Type: model.QuestionFreeText}
	existing := []model.Answer{{QuestionID: 6, Value: "fine"}}

	assert.False(t, QuestionChanged(&q, existing, []SubmittedAnswer{{QuestionID: 6, Value: "fine"}}))
	assert.True(t, QuestionChanged(&q, existing, []SubmittedAnswer{{QuestionID: 6, Value: "better"}}))

	// Empty text and no row are the same "no answer".
	assert.False(t, QuestionChanged(&q, nil, []SubmittedAnswer{{QuestionID: 6, Value: ""}}))
}

func TestHasMaterialChange(t *testing.T) {
	questions := []model.Question{
		singleQuestion(1, "Yes", "No"),
		{ID: 2, Type: model.QuestionFreeText},
	}
	existing := []model.Answer{
		storedChoice(1, 101, "Yes"),
		{QuestionID: 2, Value: "comment"},
	}

	identical := []SubmittedAnswer{
		{QuestionID: 1, Value: "Yes", OptionID: uintPtr(101)},
		{QuestionID: 2, Value: "comment"},
	}
	assert.False(t, HasMaterialChange(questions, existing, identical))

	oneEdit := []SubmittedAnswer{
		{QuestionID: 1, Value: "Yes", OptionID: uintPtr(101)},
		{QuestionID: 2, Value: "new comment"},
	}
	assert.True(t, HasMaterialChange(questions, existing, oneEdit))
}

func TestValidateRequired(t *testing.T) {
	questions := []model.Question{
		func() model.Question { q := multiQuestion(1, "A"); q.Imperative = true; return q }(),
		{ID: 2, Type: model.QuestionFreeText, Imperative: true},
		{ID: 3, Type: model.QuestionLinearScale, Imperative: true},
		{ID: 4, Type: model.QuestionFreeText}, // optional
	}

	valid := []SubmittedAnswer{
		{QuestionID: 1, Value: "A", OptionID: uintPtr(101)},
		{QuestionID: 2, Value: "text"},
		{QuestionID: 3, Value: "5"},
	}
	assert.NoError(t, ValidateRequired(questions, valid))

	// Whitespace-only text does not satisfy a required free-text question.
	blankText := []SubmittedAnswer{
		{QuestionID: 1, Value: "A", OptionID: uintPtr(101)},
		{QuestionID: 2, Value: "   "},
		{QuestionID: 3, Value: "5"},
	}
	err := ValidateRequired(questions, blankText)
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	// A non-numeric scale value does not satisfy a required scale question.
	badScale := []SubmittedAnswer{
		{QuestionID: 1, Value: "A", OptionID: uintPtr(101)},
		{QuestionID: 2, Value: "text"},
		{QuestionID: 3, Value: "high"},
	}
	assert.Error(t, ValidateRequired(questions, badScale))

	// Optional questions may be skipped entirely.
	assert.NoError(t, ValidateRequired(questions, valid[:3]))
}
