// internal/gateway/employees.go
//
// Employee CRUD. Records are scoped to the caller's organization server-side;
// deletion clears the isActive flag rather than removing the row.

package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nexthr/console/internal/hr"
)

// Employees lists the caller's organization members.
func (c *Client) Employees(ctx context.Context) ([]hr.Employee, error) {
	var list []hr.Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Employee fetches one record by id.
func (c *Client) Employee(ctx context.Context, id int64) (*hr.Employee, error) {
	var emp hr.Employee
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d", id), nil, nil, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// CreateEmployee adds a member record.
func (c *Client) CreateEmployee(ctx context.Context, emp hr.Employee) error {
	return c.do(ctx, http.MethodPost, "/employees", nil, emp, nil)
}

// UpdateEmployee replaces a member record's mutable fields.
func (c *Client) UpdateEmployee(ctx context.Context, id int64, emp hr.Employee) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/employees/%d", id), nil, emp, nil)
}

// DeleteEmployee soft-deletes a member record.
func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/employees/%d", id), nil, nil, nil)
}

// Stats fetches the display-only dashboard statistics block.
func (c *Client) Stats(ctx context.Context) (*hr.DashboardStats, error) {
	var stats hr.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
