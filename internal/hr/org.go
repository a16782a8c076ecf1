// internal/hr/org.go
//
// Tenant organization record and its lifecycle states. The console never
// invents transitions on its own: the backend is the enforcement point, and
// local legality checks exist only to keep the UI honest.

package hr

import (
	"fmt"
	"time"
)

// OrgStatus enumerates the organization lifecycle.
type OrgStatus string

const (
	OrgStatusPendingApproval OrgStatus = "PENDING_APPROVAL"
	OrgStatusActive          OrgStatus = "ACTIVE"
	OrgStatusSuspended       OrgStatus = "SUSPENDED"
	OrgStatusDormant         OrgStatus = "DORMANT"
	OrgStatusDeleted         OrgStatus = "DELETED"
)

// KnownStatuses lists every lifecycle state in display order.
var KnownStatuses = []OrgStatus{
	OrgStatusPendingApproval,
	OrgStatusActive,
	OrgStatusSuspended,
	OrgStatusDormant,
	OrgStatusDeleted,
}

// ParseOrgStatus validates a raw status string.
func ParseOrgStatus(raw string) (OrgStatus, error) {
	for _, s := range KnownStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("hr: unknown organization status %q", raw)
}

// FriendlyName returns the human label for a status.
func (s OrgStatus) FriendlyName() string {
	switch s {
	case OrgStatusPendingApproval:
		return "Pending Approval"
	case OrgStatusActive:
		return "Active"
	case OrgStatusSuspended:
		return "Suspended"
	case OrgStatusDormant:
		return "Dormant"
	case OrgStatusDeleted:
		return "Deleted"
	}
	return string(s)
}

// Actionable reports whether members of the organization may still log in.
// Deleted records stay on disk server-side but are dead for authentication.
func (s OrgStatus) Actionable() bool {
	return s != OrgStatusDeleted
}

// EmployeeCountRanges are the fixed signup brackets.
var EmployeeCountRanges = []string{"1-10", "11-50", "51-200", "201-500", "500+"}

// ValidEmployeeCountRange reports membership in the fixed bracket set.
func ValidEmployeeCountRange(v string) bool {
	for _, r := range EmployeeCountRanges {
		if r == v {
			return true
		}
	}
	return false
}

// Organization is a tenant record as returned by the admin endpoints.
// The five extended module flags are independent booleans; nothing orders or
// implies them.
type Organization struct {
	ID                         int64     `json:"id"`
	UUID                       string    `json:"organizationUuid"`
	Name                       string    `json:"name"`
	Email                      string    `json:"email"`
	Phone                      string    `json:"phone"`
	Address                    string    `json:"address"`
	Plan                       string    `json:"plan,omitempty"`
	BusinessRegistrationNumber string    `json:"businessRegistrationNumber,omitempty"`
	EmployeeCountRange         string    `json:"employeeCountRange"`
	Status                     OrgStatus `json:"status"`
	ModulePerformanceTracking  bool      `json:"modulePerformanceTracking"`
	ModuleEmployeeFeedback     bool      `json:"moduleEmployeeFeedback"`
	ModuleHiringManagement     bool      `json:"moduleHiringManagement"`
	ModuleAIFeedbackAnalyze    bool      `json:"moduleAiFeedbackAnalyze"`
	ModuleAIAttritionPredict   bool      `json:"moduleAiAttritionPrediction"`
	ModulesConfigured          bool      `json:"modulesConfigured"`
	CreatedAt                  time.Time `json:"createdAt"`
	UpdatedAt                  time.Time `json:"updatedAt,omitempty"`
}

// OrganizationUpdate carries the mutable non-status attributes for the admin
// edit form. Status changes travel through their own operations.
type OrganizationUpdate struct {
	Name                      string `json:"name"`
	Email                     string `json:"email"`
	Phone                     string `json:"phone"`
	Address                   string `json:"address"`
	EmployeeCountRange        string `json:"employeeCountRange"`
	ModulePerformanceTracking bool   `json:"modulePerformanceTracking"`
	ModuleEmployeeFeedback    bool   `json:"moduleEmployeeFeedback"`
	ModuleHiringManagement    bool   `json:"moduleHiringManagement"`
	ModuleAIFeedbackAnalyze   bool   `json:"moduleAiFeedbackAnalyze"`
	ModuleAIAttritionPredict  bool   `json:"moduleAiAttritionPrediction"`
}
