package commands

import (
	"bytes"
	"context"
	"testing"

	"civiclens/events"
	"civiclens/models"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "Water", "pouring", "from", "a", "burst", "main")
	require.NoError(t, err)

	var got struct {
		Category   models.IssueCategory `json:"category"`
		Severity   models.Severity      `json:"severity"`
		Confidence float64              `json:"confidence"`
		Department string               `json:"department"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, models.Flooding, got.Category)
	assert.Equal(t, models.High, got.Severity)
	assert.Equal(t, 0.90, got.Confidence)
	assert.Equal(t, "Department of Water Management", got.Department)
}

func TestDepartmentCommand(t *testing.T) {
	out, err := execute(t, "department", "graffiti")
	require.NoError(t, err)
	assert.Equal(t, "Parks and Recreation Department\n", out)

	_, err = execute(t, "department", "volcano")
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	out, err := execute(t, "report", "--description", "Broken sign", "--address", "5 Oak St", "--district", "West Side District")
	require.NoError(t, err)
	assert.Contains(t, out, "Category: Traffic Signage Issue")
	assert.Contains(t, out, "Location: 5 Oak St")
	assert.Contains(t, out, "District: West Side District")

	out, err = execute(t, "report", "--description", "Broken sign", "--severity", "critical", "--category", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "Priority Level: Critical Priority")
	assert.Contains(t, out, "Location: Location data unavailable")

	_, err = execute(t, "report", "--description", "Broken sign", "--severity", "urgent", "--category", "other")
	assert.Error(t, err)

	// category and severity are only overridden as a pair
	_, err = execute(t, "report", "--description", "Broken sign", "--severity", "low")
	assert.Error(t, err)
	_, err = execute(t, "report", "--description", "Broken sign", "--category", "graffiti")
	assert.Error(t, err)

	_, err = execute(t, "report")
	assert.Error(t, err)
}

func TestGeocodeCommand(t *testing.T) {
	out, err := execute(t, "geocode", "--lat=40.7128", "--lng=-74.006")
	require.NoError(t, err)
	var loc models.Location
	require.NoError(t, json.Unmarshal([]byte(out), &loc))
	assert.Equal(t, "40.7128, -74.0060", loc.Address)
	assert.Equal(t, "Downtown District", loc.District)

	out, err = execute(t, "geocode", "221B", "Baker", "Street")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &loc))
	assert.Equal(t, "221B Baker Street", loc.Address)

	_, err = execute(t, "geocode")
	assert.Error(t, err)
}

func TestDispatchHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handle := dispatchHandler(zap.New(core))

	reported, err := events.NewEvent(events.IssueReported, "abc", events.IssueReportedPayload{
		IssueID:            "abc",
		AssignedDepartment: "Sanitation Department",
	})
	require.NoError(t, err)
	require.NoError(t, handle(reported))

	deleted, err := events.NewEvent(events.IssueDeleted, "abc", map[string]string{"issue_id": "abc"})
	require.NoError(t, err)
	require.NoError(t, handle(deleted))

	broken := &events.Event{EventType: events.IssueStatusUpdated, Payload: []byte("not json")}
	assert.Error(t, handle(broken))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "issue dispatched", entries[0].Message)
	assert.Equal(t, "Sanitation Department", entries[0].ContextMap()["department"])
	assert.Equal(t, "issue withdrawn", entries[1].Message)
}
