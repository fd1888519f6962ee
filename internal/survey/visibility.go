package survey

import (
	"time"

	"github.com/surveyportal/surveyportal/internal/model"
)

// Annotated is a survey with the listing metadata a caller needs: whether the
// requesting user already participated and which departments it targets.
type Annotated struct {
	model.Survey
	CreatorName   string
	Completed     bool
	DepartmentIDs []uint
	Departments   []model.Department
}

// VisibleTo filters a listing for one identity. Privileged listers see every
// non-deleted survey; everyone else sees only surveys that are currently
// active (or force-open) and targeted at a department they actively belong
// to. Input order (descending id) is preserved.
func VisibleTo(privileged bool, memberDepts map[uint]struct{}, surveys []Annotated, now time.Time) []Annotated {
	if privileged {
		return surveys
	}

	visible := make([]Annotated, 0, len(surveys))
	for _, s := range surveys {
		if ClassifyAt(&s.Survey, now) != StatusActive {
			continue
		}
		if !targetsAny(s.DepartmentIDs, memberDepts) {
			continue
		}
		visible = append(visible, s)
	}
	return visible
}

func targetsAny(deptIDs []uint, member map[uint]struct{}) bool {
	for _, id := range deptIDs {
		if _, ok := member[id]; ok {
			return true
		}
	}
	return false
}
