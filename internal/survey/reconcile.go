package survey

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/model"
)

// SubmittedAnswer is one answer row of a candidate submission, in the same
// shape answers are stored: multi-select questions contribute one row per
// chosen option, all other types a single row.
type SubmittedAnswer struct {
	QuestionID uint
	Value      string
	OptionID   *uint
}

// liveLabels maps option id to its current label for a question.
func liveLabels(q *model.Question) map[uint]string {
	labels := make(map[uint]string, len(q.Options))
	for _, o := range q.Options {
		labels[o.ID] = o.Label
	}
	return labels
}

// effectiveOptionIDs returns the stored option choices that still count. A
// stored choice whose label snapshot no longer equals the live option label
// is treated as unselected: the option was edited after the answer was given
// and the user must re-choose.
func effectiveOptionIDs(q *model.Question, existing []model.Answer) []uint {
	labels := liveLabels(q)
	var ids []uint
	for _, a := range existing {
		if a.OptionID == nil {
			continue
		}
		if label, ok := labels[*a.OptionID]; ok && label == a.Value {
			ids = append(ids, *a.OptionID)
		}
	}
	return ids
}

func candidateOptionIDs(candidate []SubmittedAnswer) []uint {
	var ids []uint
	for _, c := range candidate {
		if c.OptionID != nil {
			ids = append(ids, *c.OptionID)
		}
	}
	return ids
}

func parseScale(v string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &n
}

func equalIDSets(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalUintPtr(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// QuestionChanged compares the stored answers of one question against the
// candidate rows, per the question type's comparison policy.
func QuestionChanged(q *model.Question, existing []model.Answer, candidate []SubmittedAnswer) bool {
	switch q.Type {
	case model.QuestionMultiSelect:
		return !equalIDSets(candidateOptionIDs(candidate), effectiveOptionIDs(q, existing))

	case model.QuestionSingleSelect:
		var current *uint
		if len(candidate) > 0 {
			current = candidate[0].OptionID
		}
		var previous *uint
		if ids := effectiveOptionIDs(q, existing); len(ids) > 0 {
			previous = &ids[0]
		}
		return !equalUintPtr(current, previous)

	case model.QuestionLinearScale:
		var current *int
		if len(candidate) > 0 {
			current = parseScale(candidate[0].Value)
		}
		var previous *int
		if len(existing) > 0 {
			previous = parseScale(existing[0].Value)
		}
		return !equalIntPtr(current, previous)

	default: // free text: empty and absent are the same "no answer"
		var current string
		if len(candidate) > 0 {
			current = candidate[0].Value
		}
		var previous string
		if len(existing) > 0 {
			previous = existing[0].Value
		}
		return current != previous
	}
}

// HasMaterialChange reports whether any question's candidate answer differs
// from its stored answer. It governs resubmission only; first submissions
// are always eligible.
func HasMaterialChange(questions []model.Question, existing []model.Answer, candidate []SubmittedAnswer) bool {
	existingByQ := groupAnswers(existing)
	candidateByQ := groupSubmitted(candidate)
	for i := range questions {
		q := &questions[i]
		if QuestionChanged(q, existingByQ[q.ID], candidateByQ[q.ID]) {
			return true
		}
	}
	return false
}

// ValidateRequired checks every imperative question for a non-empty candidate
// answer per its type's emptiness rule.
func ValidateRequired(questions []model.Question, candidate []SubmittedAnswer) error {
	byQ := groupSubmitted(candidate)
	for i := range questions {
		q := &questions[i]
		if !q.Imperative {
			continue
		}
		rows := byQ[q.ID]

		answered := false
		switch q.Type {
		case model.QuestionMultiSelect:
			answered = len(candidateOptionIDs(rows)) > 0
		case model.QuestionSingleSelect:
			answered = len(rows) > 0 && rows[0].OptionID != nil
		case model.QuestionLinearScale:
			answered = len(rows) > 0 && parseScale(rows[0].Value) != nil
		default:
			answered = len(rows) > 0 && strings.TrimSpace(rows[0].Value) != ""
		}

		if !answered {
			return apperror.Validation(fmt.Sprintf("question_%d", q.ID), "an answer is required")
		}
	}
	return nil
}

func groupAnswers(answers []model.Answer) map[uint][]model.Answer {
	grouped := make(map[uint][]model.Answer)
	for _, a := range answers {
		grouped[a.QuestionID] = append(grouped[a.QuestionID], a)
	}
	return grouped
}

func groupSubmitted(rows []SubmittedAnswer) map[uint][]SubmittedAnswer {
	grouped := make(map[uint][]SubmittedAnswer)
	for _, r := range rows {
		grouped[r.QuestionID] = append(grouped[r.QuestionID], r)
	}
	return grouped
}
