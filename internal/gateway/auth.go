// internal/gateway/auth.go
//
// Authentication endpoints. Signup has no session side effect: the
// organization waits for approval and its admin logs in afterwards.

package gateway

import (
	"context"
	"net/http"

	"github.com/nexthr/console/internal/hr"
)

// LoginResult is the unwrapped outcome of a successful login.
type LoginResult struct {
	Token              string
	Principal          *hr.Principal
	Modules            hr.ModuleConfig
	MustChangePassword bool
	ModulesConfigured  bool
}

// loginPayload mirrors the backend's LoginResponse wire shape; roles arrive
// as one comma-joined string.
type loginPayload struct {
	Token              string          `json:"token"`
	UserID             int64           `json:"userId"`
	Email              string          `json:"email"`
	FullName           string          `json:"fullName"`
	Roles              string          `json:"roles"`
	OrganizationUUID   string          `json:"organizationUuid"`
	OrganizationName   string          `json:"organizationName"`
	UserType           string          `json:"userType"`
	MustChangePassword bool            `json:"mustChangePassword"`
	ModulesConfigured  bool            `json:"modulesConfigured"`
	ModuleConfig       hr.ModuleConfig `json:"moduleConfig"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var payload loginPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &payload); err != nil {
		return nil, err
	}
	return &LoginResult{
		Token: payload.Token,
		Principal: &hr.Principal{
			UserID:           payload.UserID,
			Email:            payload.Email,
			FullName:         payload.FullName,
			Roles:            hr.ParseRoles(payload.Roles),
			OrganizationID:   payload.OrganizationUUID,
			OrganizationName: payload.OrganizationName,
			UserType:         hr.UserType(payload.UserType),
		},
		Modules:            payload.ModuleConfig,
		MustChangePassword: payload.MustChangePassword,
		ModulesConfigured:  payload.ModulesConfigured,
	}, nil
}

// SignupRequest registers a new organization together with its first admin
// and the extended module selection.
type SignupRequest struct {
	OrganizationName string `json:"organizationName"`
	EmployeeCount    string `json:"employeeCount"`
	Industry         string `json:"industry"`
	Country          string `json:"country"`
	City             string `json:"city,omitempty"`

	AdminName  string `json:"adminName"`
	AdminEmail string `json:"adminEmail"`
	AdminPhone string `json:"adminPhone"`
	Password   string `json:"password"`

	ModulePerformanceTracking bool `json:"modulePerformanceTracking"`
	ModuleEmployeeFeedback    bool `json:"moduleEmployeeFeedback"`
	ModuleHiringManagement    bool `json:"moduleHiringManagement"`
	ModuleAIFeedbackAnalyze   bool `json:"moduleAiFeedbackAnalyze"`
	ModuleAIAttritionPredict  bool `json:"moduleAiAttritionPrediction"`
}

// Signup submits an organization registration. The caller completes the flow
// by logging in once a system admin approves the organization.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", nil, req, nil)
}

// Me fetches the current principal; the startup probe uses it to validate an
// optimistically rehydrated session.
func (c *Client) Me(ctx context.Context) (*hr.Principal, error) {
	var payload loginPayload
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &hr.Principal{
		UserID:           payload.UserID,
		Email:            payload.Email,
		FullName:         payload.FullName,
		Roles:            hr.ParseRoles(payload.Roles),
		OrganizationID:   payload.OrganizationUUID,
		OrganizationName: payload.OrganizationName,
		UserType:         hr.UserType(payload.UserType),
	}, nil
}

// ConfigureModules saves the extended module selection for the caller's
// organization and returns the resulting configuration.
func (c *Client) ConfigureModules(ctx context.Context, cfg hr.ModuleConfig) (hr.ModuleConfig, error) {
	body := map[string]bool{
		"modulePerformanceTracking":   cfg.Enabled(hr.ModulePerformanceTracking),
		"moduleEmployeeFeedback":      cfg.Enabled(hr.ModuleEmployeeFeedback),
		"moduleHiringManagement":      cfg.Enabled(hr.ModuleHiringManagement),
		"moduleAiFeedbackAnalyze":     cfg.Enabled(hr.ModuleAIFeedbackAnalyze),
		"moduleAiAttritionPrediction": cfg.Enabled(hr.ModuleAIAttritionPredict),
	}
	var updated hr.ModuleConfig
	if err := c.do(ctx, http.MethodPost, "/auth/configure-modules", nil, body, &updated); err != nil {
		return nil, err
	}
	if updated == nil {
		// Some deployments answer with a bare acknowledgement; fall back
		// to what was submitted.
		updated = cfg.Clone()
	}
	return updated, nil
}
