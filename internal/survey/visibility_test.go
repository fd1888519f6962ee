package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/surveyportal/surveyportal/internal/model"
)

func annotated(id uint, deptIDs ...uint) Annotated {
	return Annotated{
		Survey: model.Survey{
			ID:         id,
			StartDate:  "2025-03-01",
			StartTime:  "00:00",
			FinishDate: "2025-03-31",
			FinishTime: "23:59",
		},
		DepartmentIDs: deptIDs,
	}
}

func TestVisibleTo_PrivilegedSeesEverything(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)
	expired := annotated(3, 1)
	expired.FinishDate = "2025-03-02"

	surveys := []Annotated{annotated(5, 9), annotated(4), expired}
	visible := VisibleTo(true, nil, surveys, now)

	assert.Len(t, visible, 3)
	// Input order (newest first) is preserved.
	assert.Equal(t, uint(5), visible[0].ID)
	assert.Equal(t, uint(3), visible[2].ID)
}

func TestVisibleTo_UnprivilegedNeedsActiveAndMembership(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)
	member := map[uint]struct{}{2: {}}

	inDept := annotated(10, 1, 2)
	wrongDept := annotated(9, 1)
	noDept := annotated(8)
	expiredInDept := annotated(7, 2)
	expiredInDept.FinishDate = "2025-03-02"

	visible := VisibleTo(false, member, []Annotated{inDept, wrongDept, noDept, expiredInDept}, now)

	assert.Len(t, visible, 1)
	assert.Equal(t, uint(10), visible[0].ID)
}

func TestVisibleTo_ForceActiveBypassesWindowNotMembership(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local) // well past the window
	member := map[uint]struct{}{2: {}}

	forced := annotated(11, 2)
	forced.ForceActive = true
	forcedWrongDept := annotated(12, 1)
	forcedWrongDept.ForceActive = true

	visible := VisibleTo(false, member, []Annotated{forcedWrongDept, forced}, now)

	assert.Len(t, visible, 1)
	assert.Equal(t, uint(11), visible[0].ID)
}

func TestVisibleTo_EmptyMembershipHidesAll(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)
	visible := VisibleTo(false, map[uint]struct{}{}, []Annotated{annotated(1, 1), annotated(2, 2)}, now)
	assert.Empty(t, visible)
}
