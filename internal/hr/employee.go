package hr

import "time"

// Employment types accepted by the backend.
var EmploymentTypes = []string{"FULL_TIME", "PART_TIME", "CONTRACT", "INTERN"}

// Employee is a member record of one organization. Deleting an employee only
// clears IsActive; the row survives server-side.
type Employee struct {
	ID             int64      `json:"id,omitempty"`
	EmployeeCode   string     `json:"employeeCode,omitempty"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Department     string     `json:"department,omitempty"`
	Designation    string     `json:"designation,omitempty"`
	EmploymentType string     `json:"employmentType,omitempty"`
	DateOfJoining  string     `json:"dateOfJoining,omitempty"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

// FullName mirrors the backend's derived display name.
func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// DashboardStats is the display-only stat block behind the org dashboards.
// The console renders it; it never derives or mutates any of it.
type DashboardStats struct {
	TotalEmployees       int64 `json:"totalEmployees"`
	ActiveEmployees      int64 `json:"activeEmployees"`
	PresentToday         int64 `json:"presentToday"`
	EmployeesOnLeave     int64 `json:"employeesOnLeaveToday"`
	PendingLeaveRequests int64 `json:"pendingLeaveRequests"`
}
