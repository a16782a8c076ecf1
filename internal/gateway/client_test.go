package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexthr/console/internal/hr"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, token string, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(srv.URL, 2*time.Second, staticToken(token), opts...)
	return c, srv
}

func TestRequestCarriesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}), "tok-1")

	_, err := c.Organizations(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestNoBearerWhenLoggedOut(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), "")

	_, err := c.Organizations(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestEnvelopeAndBareFallback(t *testing.T) {
	t.Run("enveloped payload", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"message":"ok","data":[{"id":1,"name":"Acme","status":"ACTIVE"}]}`))
		}), "tok")
		orgs, err := c.Organizations(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		assert.Equal(t, "Acme", orgs[0].Name)
		assert.Equal(t, hr.OrgStatusActive, orgs[0].Status)
	})

	t.Run("bare array fallback", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":2,"name":"Zenith","status":"PENDING_APPROVAL"}]`))
		}), "tok")
		orgs, err := c.Organizations(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		assert.Equal(t, "Zenith", orgs[0].Name)
	})

	t.Run("envelope with success false", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"message":"nothing here"}`))
		}), "tok")
		_, err := c.Organizations(context.Background(), "")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "nothing here", apiErr.Message)
	})
}

func TestUnauthorizedFiresHookAndClearsNothingElse(t *testing.T) {
	hookCalls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), "stale", WithUnauthorizedHook(func() { hookCalls++ }))

	_, err := c.Organizations(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, hookCalls, "hook fires exactly once per response")
}

func TestForbiddenKeepsSession(t *testing.T) {
	hookCalls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}), "tok", WithUnauthorizedHook(func() { hookCalls++ }))

	err := c.ApproveOrganization(context.Background(), 1)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, hookCalls, "403 must not tear the session down")
}

func TestErrorMessageExtraction(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"organization is not pending approval"}`))
	}), "tok")

	err := c.ApproveOrganization(context.Background(), 9)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "organization is not pending approval", apiErr.Message)
	assert.Equal(t, "organization is not pending approval", apiErr.Error())
}

func TestTransportFailureMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore
	c := New(srv.URL, time.Second, staticToken("tok"))

	_, err := c.Organizations(context.Background(), "")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLoginBuildsPrincipal(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{
			"token":"jwt-abc",
			"userId":42,
			"email":"ada@acme.io",
			"fullName":"Ada Admin",
			"roles":"ROLE_ORG_ADMIN,ROLE_HR_STAFF",
			"organizationUuid":"uuid-1",
			"organizationName":"Acme",
			"userType":"ORG_USER",
			"moduleConfig":{"performanceTracking":true}
		}}`))
	}), "")

	result, err := c.Login(context.Background(), "ada@acme.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", result.Token)
	assert.Equal(t, []string{"ROLE_ORG_ADMIN", "ROLE_HR_STAFF"}, result.Principal.Roles)
	assert.Equal(t, hr.UserTypeOrgUser, result.Principal.UserType)
	assert.True(t, result.Modules.Enabled(hr.ModulePerformanceTracking))
}

func TestOrganizationsStatusQuery(t *testing.T) {
	var gotStatus string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		w.Write([]byte(`[]`))
	}), "tok")

	_, err := c.Organizations(context.Background(), "ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", gotStatus)
}

func TestSetOrganizationStatusPath(t *testing.T) {
	var gotPath, gotQuery string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("status")
		assert.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(`{"success":true}`))
	}), "tok")

	require.NoError(t, c.SetOrganizationStatus(context.Background(), 7, hr.OrgStatusDormant))
	assert.Equal(t, "/admin/organizations/7/status", gotPath)
	assert.Equal(t, "DORMANT", gotQuery)
}

func TestConfigureModulesFallsBackToSubmitted(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"saved"}`))
	}), "tok")

	cfg := hr.ModuleConfig{hr.ModuleHiringManagement: true}
	updated, err := c.ConfigureModules(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, updated.Enabled(hr.ModuleHiringManagement))
}
