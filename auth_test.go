// auth_test.go
package main

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginPageRenders(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Store Login")
	assert.NotContains(t, body, "Invalid username or password!")
}

func TestPing(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/ping")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "alive", body["status"])
}

func TestLoginAdminRedirectsToAdminDashboard(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, usersTable.Save([][]string{{"admin", "secret"}}))

	resp := postForm(t, app, "/login", url.Values{"username": {"admin"}, "password": {"secret"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admindashboard", resp.Header.Get("Location"))
}

func TestLoginAdminCaseInsensitiveRouting(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, usersTable.Save([][]string{{"Admin", "secret"}}))

	// The username match is case-sensitive, but the admin routing check
	// lower-cases it.
	resp := postForm(t, app, "/login", url.Values{"username": {"Admin"}, "password": {"secret"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admindashboard", resp.Header.Get("Location"))
}

func TestLoginEmployeeRedirectsToEmployeeDashboard(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, usersTable.Save([][]string{{"E1", "E1@123"}}))

	resp := postForm(t, app, "/login", url.Values{"username": {"E1"}, "password": {"E1@123"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/empdashboard", resp.Header.Get("Location"))
}

func TestLoginBadCredentialsReRendersWithError(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, usersTable.Save([][]string{{"E1", "E1@123"}}))

	for _, form := range []url.Values{
		{"username": {"E1"}, "password": {"wrong"}},
		{"username": {"nobody"}, "password": {"E1@123"}},
		{"username": {"e1"}, "password": {"E1@123"}}, // username match is case-sensitive
	} {
		resp := postForm(t, app, "/login", form)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Invalid username or password!")
	}
}

func TestDashboardPagesServe(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/admindashboard", "/empdashboard", "/pos", "/pg"} {
		resp := get(t, app, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestUnknownRouteGets404Page(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "404")
}
