package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  Capabilities
	}{
		{
			name:  "admin grants everything",
			roles: []string{RoleAdmin},
			want:  Capabilities{CanManageSurveys: true, CanViewReports: true, PrivilegedLister: true},
		},
		{
			name:  "survey management grants everything",
			roles: []string{RoleSurveyManagement},
			want:  Capabilities{CanManageSurveys: true, CanViewReports: true, PrivilegedLister: true},
		},
		{
			name:  "reporting sees reports and full listings but cannot manage",
			roles: []string{RoleSurveyReporting},
			want:  Capabilities{CanViewReports: true, PrivilegedLister: true},
		},
		{
			name:  "baseline user has nothing",
			roles: nil,
			want:  Capabilities{},
		},
		{
			name:  "unknown roles are ignored",
			roles: []string{"janitor", "intern"},
			want:  Capabilities{},
		},
		{
			name:  "capabilities are a union over roles",
			roles: []string{"janitor", RoleSurveyReporting},
			want:  Capabilities{CanViewReports: true, PrivilegedLister: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.roles))
		})
	}
}

func TestIdentityCapabilities(t *testing.T) {
	identity := Identity{ID: 7, Name: "Someone", Roles: []string{RoleSurveyReporting}}
	caps := identity.Capabilities()
	assert.True(t, caps.CanViewReports)
	assert.False(t, caps.CanManageSurveys)
}
