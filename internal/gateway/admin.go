// internal/gateway/admin.go
//
// System-admin organization endpoints. The backend enforces the capability;
// these calls simply fail with 403 for anyone else.

package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nexthr/console/internal/hr"
)

// PendingOrganizations lists organizations awaiting approval.
func (c *Client) PendingOrganizations(ctx context.Context) ([]hr.Organization, error) {
	var orgs []hr.Organization
	if err := c.do(ctx, http.MethodGet, "/admin/organizations/pending", nil, nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Organizations lists every organization, optionally filtered server-side by
// status. An empty status fetches the full set.
func (c *Client) Organizations(ctx context.Context, status string) ([]hr.Organization, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{status}}
	}
	var orgs []hr.Organization
	if err := c.do(ctx, http.MethodGet, "/admin/organizations", query, nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// ApproveOrganization moves a pending organization to ACTIVE; its users
// become able to authenticate (enforced server-side).
func (c *Client) ApproveOrganization(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/organizations/%d/approve", id), nil, nil, nil)
}

// RejectOrganization permanently removes a pending organization from the
// actionable set.
func (c *Client) RejectOrganization(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/organizations/%d/reject", id), nil, nil, nil)
}

// SetOrganizationStatus is the administrative override: a direct transition
// to any lifecycle state regardless of the current one.
func (c *Client) SetOrganizationStatus(ctx context.Context, id int64, status hr.OrgStatus) error {
	query := url.Values{"status": []string{string(status)}}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/organizations/%d/status", id), query, nil, nil)
}

// UpdateOrganization mutates non-status attributes.
func (c *Client) UpdateOrganization(ctx context.Context, id int64, upd hr.OrganizationUpdate) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/organizations/%d", id), nil, upd, nil)
}

// DeleteOrganization removes an organization from the admin's working list.
func (c *Client) DeleteOrganization(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/organizations/%d", id), nil, nil, nil)
}
