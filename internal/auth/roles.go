package auth

// Recognized role tags. Anything else falls back to the baseline user with no
// elevated capabilities.
const (
	RoleAdmin            = "admin"
	RoleSurveyManagement = "survey_management"
	RoleSurveyReporting  = "survey_reporting"
)

// Capabilities are the coarse permissions derived from a role set.
type Capabilities struct {
	CanManageSurveys bool
	CanViewReports   bool
	// PrivilegedLister sees every non-deleted survey regardless of
	// department targeting or active window.
	PrivilegedLister bool
}

// Authorize maps a set of granted role tags to capabilities. The set is
// unordered; admin alone grants everything.
func Authorize(roles []string) Capabilities {
	var caps Capabilities
	for _, role := range roles {
		switch role {
		case RoleAdmin, RoleSurveyManagement:
			caps.CanManageSurveys = true
			caps.CanViewReports = true
			caps.PrivilegedLister = true
		case RoleSurveyReporting:
			caps.CanViewReports = true
			caps.PrivilegedLister = true
		}
	}
	return caps
}
