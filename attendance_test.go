// attendance_test.go
package main

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAttendance(t *testing.T) {
	app := newTestApp(t)
	today := time.Now().Format(dateLayout)

	resp := postForm(t, app, "/mark_attendance", url.Values{"emp_code": {"E1"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Attendance marked successfully for E1 on "+today+".", body["message"])

	rows, err := attendanceTable.Load()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"E1", today}}, rows)
}

func TestMarkAttendanceTwiceSameDayFailsWithoutMutation(t *testing.T) {
	app := newTestApp(t)
	today := time.Now().Format(dateLayout)

	resp := postForm(t, app, "/mark_attendance", url.Values{"emp_code": {"E1"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postForm(t, app, "/mark_attendance", url.Values{"emp_code": {"E1"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "Attendance already marked for E1 on "+today+".", body["message"])

	rows, err := attendanceTable.Load()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMarkAttendanceDistinctDatesBothKept(t *testing.T) {
	app := newTestApp(t)
	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	require.NoError(t, attendanceTable.Save([][]string{{"E1", yesterday}}))

	resp := postForm(t, app, "/mark_attendance", url.Values{"emp_code": {"E1"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "success", body["status"])

	rows, err := attendanceTable.Load()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestMarkAttendanceUnknownEmployeeStillAccepted(t *testing.T) {
	// No existence check against the employees table.
	app := newTestApp(t)

	resp := postForm(t, app, "/mark_attendance", url.Values{"emp_code": {"GHOST"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "success", body["status"])
}

func TestMarkAttendanceMissingEmpCodeRejected(t *testing.T) {
	app := newTestApp(t)

	resp := postForm(t, app, "/mark_attendance", url.Values{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	rows, err := attendanceTable.Load()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetAttendanceColumnarShape(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, attendanceTable.Save([][]string{
		{"E1", "2024-03-01"},
		{"E2", "2024-03-01"},
	}))

	resp := get(t, app, "/api/attendance")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cols struct {
		EmpCode []string `json:"emp_code"`
		Date    []string `json:"date"`
	}
	decodeBody(t, resp, &cols)
	assert.Equal(t, []string{"E1", "E2"}, cols.EmpCode)
	assert.Equal(t, []string{"2024-03-01", "2024-03-01"}, cols.Date)
}
