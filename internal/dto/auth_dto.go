package dto

type LoginRequest struct {
	EmployeeNo string `json:"employee_no" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type CapabilitiesResponse struct {
	CanManageSurveys bool `json:"can_manage_surveys"`
	CanViewReports   bool `json:"can_view_reports"`
	PrivilegedLister bool `json:"privileged_lister"`
}

type ProfileResponse struct {
	ID           uint                 `json:"id"`
	EmployeeNo   string               `json:"employee_no"`
	Name         string               `json:"name"`
	Title        string               `json:"title,omitempty"`
	Roles        []string             `json:"roles"`
	Capabilities CapabilitiesResponse `json:"capabilities"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}
