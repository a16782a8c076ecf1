// internal/orgs/controller.go
//
// Organization lifecycle controller for the admin board. It owns the cached
// organization set, the pending-approval list and the derived counters, and
// issues state-transition commands through the gateway.
//
// Two rules shape everything here. First, no optimistic mutation: a command
// either succeeds on the backend or the local set stays exactly as it was,
// and the visible effect of any mutation always comes from the reload that
// follows it. Second, the capability check is a usability guard only; the
// backend is the actual enforcement point.

package orgs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexthr/console/internal/authz"
	"github.com/nexthr/console/internal/hr"
)

// FilterAll is the status filter wildcard.
const FilterAll = "ALL"

var (
	// ErrNotPermitted is the local usability guard for non-system-admins.
	ErrNotPermitted = errors.New("orgs: operation requires system administrator capability")

	// ErrIllegalTransition is returned when approve/reject is attempted on
	// an organization that is no longer pending.
	ErrIllegalTransition = errors.New("orgs: organization is not pending approval")
)

// AdminService is the slice of the gateway the controller needs.
type AdminService interface {
	PendingOrganizations(ctx context.Context) ([]hr.Organization, error)
	Organizations(ctx context.Context, status string) ([]hr.Organization, error)
	ApproveOrganization(ctx context.Context, id int64) error
	RejectOrganization(ctx context.Context, id int64) error
	SetOrganizationStatus(ctx context.Context, id int64, status hr.OrgStatus) error
	UpdateOrganization(ctx context.Context, id int64, upd hr.OrganizationUpdate) error
	DeleteOrganization(ctx context.Context, id int64) error
}

// PrincipalSource yields the current principal; the session store satisfies
// this.
type PrincipalSource interface {
	Principal() *hr.Principal
}

// Stats are the summary counters, always computed over the unfiltered set.
// Display filters never touch them.
type Stats struct {
	Total     int
	Pending   int
	Active    int
	Suspended int
}

// FilterSpec narrows the displayed table. All present predicates combine
// with logical AND; zero values mean "no constraint".
type FilterSpec struct {
	Status string    // FilterAll or a lifecycle state
	From   time.Time // inclusive creation-date lower bound
	To     time.Time // inclusive creation-date upper bound
	Name   string    // case-insensitive substring on the organization name
}

// Matches applies the filter to one organization.
func (f FilterSpec) Matches(org hr.Organization) bool {
	if f.Status != "" && f.Status != FilterAll && string(org.Status) != f.Status {
		return false
	}
	if !f.From.IsZero() && org.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && org.CreatedAt.After(f.To) {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(org.Name), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

// Controller drives the organization lifecycle for the admin board.
type Controller struct {
	api       AdminService
	principal PrincipalSource
	log       zerolog.Logger

	mu      sync.RWMutex
	orgs    []hr.Organization
	pending []hr.Organization
	stats   Stats
}

// NewController wires the controller to the gateway and the session.
func NewController(api AdminService, principal PrincipalSource, log zerolog.Logger) *Controller {
	return &Controller{api: api, principal: principal, log: log}
}

func (c *Controller) requireSystemAdmin() error {
	if !authz.IsSystemAdmin(c.principal.Principal()) {
		return ErrNotPermitted
	}
	return nil
}

// RefreshAll fetches the full organization set and recomputes the counters.
// It is independent of RefreshPending; the two may complete in either order.
func (c *Controller) RefreshAll(ctx context.Context) error {
	if err := c.requireSystemAdmin(); err != nil {
		return err
	}
	orgs, err := c.api.Organizations(ctx, "")
	if err != nil {
		return err
	}
	stats := computeStats(orgs)

	c.mu.Lock()
	c.orgs = orgs
	c.stats = stats
	c.mu.Unlock()

	c.log.Debug().Int("total", stats.Total).Int("pending", stats.Pending).Msg("organization set refreshed")
	return nil
}

// RefreshPending fetches the approval queue.
func (c *Controller) RefreshPending(ctx context.Context) error {
	if err := c.requireSystemAdmin(); err != nil {
		return err
	}
	pending, err := c.api.PendingOrganizations(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.pending = pending
	c.mu.Unlock()
	return nil
}

func computeStats(orgs []hr.Organization) Stats {
	stats := Stats{Total: len(orgs)}
	for _, org := range orgs {
		switch org.Status {
		case hr.OrgStatusPendingApproval:
			stats.Pending++
		case hr.OrgStatusActive:
			stats.Active++
		case hr.OrgStatusSuspended:
			stats.Suspended++
		}
	}
	return stats
}

// Approve activates a pending organization. The local status check catches
// the obvious double-approve; when the cache is stale the backend's
// rejection is surfaced instead, and either way the truth arrives with the
// next refresh.
func (c *Controller) Approve(ctx context.Context, id int64) error {
	if err := c.requireSystemAdmin(); err != nil {
		return err
	}
	if org, ok := c.find(id); ok && org.Status != hr.OrgStatusPendingApproval {
		return fmt.Errorf("%w: %s is %s", ErrIllegalTransition, org.Name, org.Status.FriendlyName())
	}
	if err := c.api.ApproveOrganization(ctx, id); err != nil {
		return err
	}
	c.log.Info().Int64("org", id).Msg("organization approved")
	return nil
}

// Reject permanently removes a pending organization from the actionable set.
func (c *Controller) Reject(ctx context.Context, id int64) error {
	if err := c.requireSystemAdmin(); err != nil {
		return err
	}
	if org, ok := c.find(id); ok && org.Status != hr.OrgStatusPendingApproval {
		return fmt.Errorf("%w: %s is %s", ErrIllegalTransition, org.Name, org.Status.FriendlyName())
	}
	if err := c.api.RejectOrganization(ctx, id); err != nil {
		return err
	}
	c.log.Info().Int64("org", id).Msg("organization rejected")
	return nil
}

// SetStatus is the administrative override: any state to any state, with no
// client-side source constraint. That includes resurrecting a DELETED
// organization to ACTIVE, which is a supported recovery path rather than an
// accident, so it is allowed knowingly here.
func (c *Controller) SetStatus(ctx context.Context, id int64, status hr.OrgStatus) error {
	if err := c.requireSystemAdmin(); err != nil {
		return err
	}
	if _, err := hr.ParseOrgStatus(string(status)); err != nil {
		return err
	}
	if err := c.api.SetOrganizationStatus(ctx, id, status); err != nil {
		return err
	}
	c.log.Info().Int64("org", id).Str("status", string(status)).Msg("organization status overridden")
	return nil
}

// Update mutates non-status attributes.
func (c *Controller) Update(ctx context.Context, id int64, upd hr.OrganizationUpdate) error {
	if err := c.requireSystemAdmin(); err != nil {
		return err
	}
	if upd.EmployeeCountRange != "" && !hr.ValidEmployeeCountRange(upd.EmployeeCountRange) {
		return fmt.Errorf("orgs: invalid employee count range %q", upd.EmployeeCountRange)
	}
	return c.api.UpdateOrganization(ctx, id, upd)
}

// Remove hard-deletes an organization from the working list. Distinct from
// Reject, which is the pre-approval path.
func (c *Controller) Remove(ctx context.Context, id int64) error {
	if err := c.requireSystemAdmin(); err != nil {
		return err
	}
	if err := c.api.DeleteOrganization(ctx, id); err != nil {
		return err
	}
	c.log.Info().Int64("org", id).Msg("organization removed")
	return nil
}

func (c *Controller) find(id int64) (hr.Organization, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, org := range c.orgs {
		if org.ID == id {
			return org, true
		}
	}
	return hr.Organization{}, false
}

// Organizations returns a copy of the cached full set.
func (c *Controller) Organizations() []hr.Organization {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]hr.Organization, len(c.orgs))
	copy(out, c.orgs)
	return out
}

// Pending returns a copy of the cached approval queue.
func (c *Controller) Pending() []hr.Organization {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]hr.Organization, len(c.pending))
	copy(out, c.pending)
	return out
}

// Stats returns the counters over the unfiltered set.
func (c *Controller) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Filtered applies the filter client-side to the cached set, newest first.
// Only the displayed table shrinks; Stats is untouched by any filter.
func (c *Controller) Filtered(spec FilterSpec) []hr.Organization {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]hr.Organization, 0, len(c.orgs))
	for _, org := range c.orgs {
		if spec.Matches(org) {
			out = append(out, org)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
