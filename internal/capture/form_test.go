package capture

import (
	"context"
	"errors"
	"testing"

	"github.com/fieldserve/backend/internal/client"
	"github.com/fieldserve/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUpdater struct {
	calls       int
	lastID      string
	lastPayload client.UpdatePayload
	result      *models.ServiceRequest
	err         error
}

func (m *mockUpdater) SubmitUpdate(_ context.Context, id string, payload client.UpdatePayload) (*models.ServiceRequest, error) {
	m.calls++
	m.lastID = id
	m.lastPayload = payload
	return m.result, m.err
}

type mockNotifier struct {
	successes []string
	errors    []string
	alerts    []string
}

func (m *mockNotifier) Success(message string) { m.successes = append(m.successes, message) }
func (m *mockNotifier) Error(message string)   { m.errors = append(m.errors, message) }
func (m *mockNotifier) Alert(title, message string) {
	m.alerts = append(m.alerts, title+": "+message)
}

type mockNavigator struct {
	homeCalls int
}

func (m *mockNavigator) GoHome() { m.homeCalls++ }

func newTestForm(sr models.ServiceRequest) (*Form, *mockUpdater, *mockNotifier, *mockNavigator) {
	updater := &mockUpdater{result: &sr}
	notifier := &mockNotifier{}
	nav := &mockNavigator{}
	return NewForm(sr, updater, notifier, nav), updater, notifier, nav
}

func TestFormDefaultsStatusToPending(t *testing.T) {
	form, _, _, _ := newTestForm(models.ServiceRequest{ID: "sr-1"})
	assert.Equal(t, models.StatusPending, form.Status())
}

func TestFormKeepsRecordStatus(t *testing.T) {
	form, _, _, _ := newTestForm(models.ServiceRequest{ID: "sr-1", Status: models.StatusOnHold})
	assert.Equal(t, models.StatusOnHold, form.Status())
}

func TestStatusSelectorExactlyOneSelected(t *testing.T) {
	form, _, _, _ := newTestForm(models.ServiceRequest{ID: "sr-1"})

	for _, option := range form.StatusOptions() {
		form.SelectStatus(option)

		selected := 0
		for _, candidate := range form.StatusOptions() {
			if form.StatusSelected(candidate) {
				selected++
				assert.Equal(t, option, candidate)
			}
		}
		assert.Equal(t, 1, selected, "exactly one option selected for %q", option)
	}
}

func TestStatusSelectorUnrecognizedValueSelectsNone(t *testing.T) {
	form, _, _, _ := newTestForm(models.ServiceRequest{ID: "sr-1", Status: "Archived"})

	for _, candidate := range form.StatusOptions() {
		assert.False(t, form.StatusSelected(candidate))
	}
}

func TestSubmitMissingIDNeverCallsNetwork(t *testing.T) {
	form, updater, notifier, nav := newTestForm(models.ServiceRequest{})

	err := form.Submit(context.Background())

	require.ErrorIs(t, err, ErrMissingID)
	assert.Equal(t, 0, updater.calls)
	assert.Equal(t, 0, nav.homeCalls)
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, "Error: Service request ID is missing", notifier.alerts[0])
}

func TestSubmitSuccessNotifiesAndNavigatesHome(t *testing.T) {
	form, updater, notifier, nav := newTestForm(models.ServiceRequest{ID: "sr-1"})
	form.SelectStatus(models.StatusCompleted)
	form.SetComments("Replaced compressor")
	form.BeginStroke(10, 10)
	form.MoveStroke(80, 40)
	form.EndStroke()
	form.SaveSignature()

	err := form.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, updater.calls)
	assert.Equal(t, "sr-1", updater.lastID)
	assert.Equal(t, models.StatusCompleted, updater.lastPayload.Status)
	assert.Equal(t, "Replaced compressor", updater.lastPayload.Comments)
	assert.NotEmpty(t, updater.lastPayload.Signature)
	require.Len(t, notifier.successes, 1)
	assert.Equal(t, "Service request updated successfully!", notifier.successes[0])
	assert.Equal(t, 1, nav.homeCalls)
}

func TestSubmitPermissionDeniedShowsDedicatedMessage(t *testing.T) {
	form, updater, notifier, nav := newTestForm(models.ServiceRequest{ID: "sr-1"})
	updater.err = client.ErrPermissionDenied
	updater.result = nil

	err := form.Submit(context.Background())

	require.ErrorIs(t, err, client.ErrPermissionDenied)
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, "You do not have permission to update this service request.", notifier.errors[0])
	assert.Empty(t, notifier.successes)
	assert.Equal(t, 0, nav.homeCalls)
}

func TestSubmitServerErrorAlertsWithServerMessage(t *testing.T) {
	form, updater, notifier, _ := newTestForm(models.ServiceRequest{ID: "sr-1"})
	updater.err = &client.APIError{StatusCode: 404, Message: "Service request not found"}
	updater.result = nil

	err := form.Submit(context.Background())

	require.Error(t, err)
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, "Error: Service request not found", notifier.alerts[0])
}

func TestSubmitTransportFailureAlertsGenerically(t *testing.T) {
	form, updater, notifier, _ := newTestForm(models.ServiceRequest{ID: "sr-1"})
	updater.err = errors.New("dial tcp: connection refused")
	updater.result = nil

	err := form.Submit(context.Background())

	require.Error(t, err)
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, "Error: Failed to update service request. Please try again.", notifier.alerts[0])
}

func TestToggleVideoRecordingIsUIOnly(t *testing.T) {
	form, updater, _, _ := newTestForm(models.ServiceRequest{ID: "sr-1"})

	assert.False(t, form.RecordingVideo())
	assert.Equal(t, "Video recording started", form.ToggleVideoRecording())
	assert.True(t, form.RecordingVideo())
	assert.Equal(t, "Video recording stopped", form.ToggleVideoRecording())
	assert.False(t, form.RecordingVideo())
	assert.Equal(t, 0, updater.calls)
	assert.Equal(t, "", form.VideoPath())
}

func TestStrokeLocksScrolling(t *testing.T) {
	form, _, _, _ := newTestForm(models.ServiceRequest{ID: "sr-1"})

	assert.True(t, form.ScrollEnabled())
	form.BeginStroke(10, 10)
	assert.False(t, form.ScrollEnabled())
	form.MoveStroke(20, 20)
	assert.False(t, form.ScrollEnabled())
	form.EndStroke()
	assert.True(t, form.ScrollEnabled())
}

func TestClearSignatureResetsEverything(t *testing.T) {
	form, _, _, _ := newTestForm(models.ServiceRequest{ID: "sr-1", Signature: "data:image/png;base64,old"})

	// First drawing on the left half of the pad.
	form.BeginStroke(50, 150)
	form.MoveStroke(120, 150)
	form.EndStroke()
	form.SaveSignature()
	require.NotEmpty(t, form.Signature())
	firstPad := form.Pad()

	form.ClearSignature()

	assert.Equal(t, "", form.Signature())
	assert.True(t, form.Pad().Empty())
	assert.NotSame(t, firstPad, form.Pad(), "pad must be recreated, not reused")

	// Second drawing on the right half only.
	form.BeginStroke(450, 150)
	form.MoveStroke(520, 150)
	form.EndStroke()
	form.SaveSignature()

	img := decodeSignature(t, form.Signature())
	assert.False(t, regionInked(img, 0, 0, 299, 299), "first drawing must not survive clear")
	assert.True(t, regionInked(img, 300, 0, 599, 299), "second drawing must be present")
}

func TestClearSignatureDiscardsInProgressStroke(t *testing.T) {
	form, _, _, _ := newTestForm(models.ServiceRequest{ID: "sr-1"})

	form.BeginStroke(50, 50)
	form.MoveStroke(60, 60)
	form.ClearSignature()

	assert.True(t, form.Pad().Empty())
	assert.True(t, form.ScrollEnabled())
	assert.Equal(t, "", form.Signature())
}
