package capture

import (
	"context"
	"errors"

	"github.com/fieldserve/backend/internal/client"
	"github.com/fieldserve/backend/internal/models"
)

// ErrMissingID is raised when submit is attempted on a record without an
// identifier. No network call is made in that case.
var ErrMissingID = errors.New("service request ID is missing")

// Updater is the slice of the API client the form needs.
type Updater interface {
	SubmitUpdate(ctx context.Context, id string, payload client.UpdatePayload) (*models.ServiceRequest, error)
}

// Notifier receives the user-visible outcome of every submit.
type Notifier interface {
	Success(message string)
	Error(message string)
	Alert(title, message string)
}

// Navigator moves the user back to the record list after a confirmed update.
type Navigator interface {
	GoHome()
}

const (
	defaultPadWidth  = 600
	defaultPadHeight = 300
)

// Form is the update-screen state for a single service request. It is not
// safe for concurrent use; one form exists per screen instance.
type Form struct {
	request models.ServiceRequest

	comments       string
	status         models.ServiceRequestStatus
	signature      string
	videoPath      string
	recordingVideo bool
	scrollLocked   bool

	pad       *SignaturePad
	padWidth  int
	padHeight int

	updater  Updater
	notifier Notifier
	nav      Navigator
}

func NewForm(sr models.ServiceRequest, updater Updater, notifier Notifier, nav Navigator) *Form {
	status := sr.Status
	if status == "" {
		status = models.StatusPending
	}
	return &Form{
		request:   sr,
		comments:  sr.Comments,
		status:    status,
		signature: sr.Signature,
		videoPath: sr.VideoFeedback,
		pad:       NewSignaturePad(defaultPadWidth, defaultPadHeight),
		padWidth:  defaultPadWidth,
		padHeight: defaultPadHeight,
		updater:   updater,
		notifier:  notifier,
		nav:       nav,
	}
}

// StatusOptions returns the selectable status values in display order.
func (f *Form) StatusOptions() []models.ServiceRequestStatus {
	return models.StatusOptions()
}

func (f *Form) SelectStatus(status models.ServiceRequestStatus) {
	f.status = status
}

func (f *Form) Status() models.ServiceRequestStatus {
	return f.status
}

// StatusSelected reports whether the given option is the one visually marked
// selected. At most one option matches; an unrecognized stored status
// matches none.
func (f *Form) StatusSelected(status models.ServiceRequestStatus) bool {
	return f.status == status
}

func (f *Form) SetComments(comments string) {
	f.comments = comments
}

func (f *Form) Comments() string {
	return f.comments
}

// ToggleVideoRecording flips the recording stub between idle and recording.
// There is no media pipeline; the returned text is the acknowledgement shown
// to the user.
func (f *Form) ToggleVideoRecording() string {
	f.recordingVideo = !f.recordingVideo
	if f.recordingVideo {
		return "Video recording started"
	}
	return "Video recording stopped"
}

func (f *Form) RecordingVideo() bool {
	return f.recordingVideo
}

func (f *Form) VideoPath() string {
	return f.videoPath
}

// Pad exposes the current signature surface.
func (f *Form) Pad() *SignaturePad {
	return f.pad
}

// BeginStroke starts drawing and locks outer scrolling so a moving finger
// cannot pan the screen mid-signature.
func (f *Form) BeginStroke(x, y float64) {
	f.scrollLocked = true
	f.pad.Begin(x, y)
}

func (f *Form) MoveStroke(x, y float64) {
	f.pad.Move(x, y)
}

// EndStroke finishes drawing and unlocks scrolling.
func (f *Form) EndStroke() {
	f.pad.End()
	f.scrollLocked = false
}

func (f *Form) ScrollEnabled() bool {
	return !f.scrollLocked
}

// SaveSignature captures the pad content as the form's signature value.
func (f *Form) SaveSignature() {
	f.signature = f.pad.Save()
}

// ClearSignature empties the captured signature and replaces the pad with a
// freshly constructed one, discarding any in-progress stroke. The pad is
// recreated rather than reset in place so no residual stroke state survives.
func (f *Form) ClearSignature() {
	f.signature = ""
	f.pad = NewSignaturePad(f.padWidth, f.padHeight)
	f.scrollLocked = false
}

func (f *Form) Signature() string {
	return f.signature
}

// Submit sends the update and maps the outcome to user-visible notifications:
// success toast plus navigation home, a dedicated permission-denied toast on
// 403, an alert with the server message on other failures, and a generic
// try-again alert when the request never reached the server. A record without
// an id fails locally before any network call.
func (f *Form) Submit(ctx context.Context) error {
	if f.request.ID == "" {
		f.notifier.Alert("Error", "Service request ID is missing")
		return ErrMissingID
	}

	payload := client.UpdatePayload{
		Comments:      f.comments,
		Status:        f.status,
		Signature:     f.signature,
		VideoFeedback: f.videoPath,
	}

	_, err := f.updater.SubmitUpdate(ctx, f.request.ID, payload)

	var apiErr *client.APIError
	switch {
	case err == nil:
		f.notifier.Success("Service request updated successfully!")
		f.nav.GoHome()
		return nil
	case errors.Is(err, client.ErrPermissionDenied):
		f.notifier.Error("You do not have permission to update this service request.")
		return err
	case errors.As(err, &apiErr):
		f.notifier.Alert("Error", apiErr.Message)
		return err
	default:
		f.notifier.Alert("Error", "Failed to update service request. Please try again.")
		return err
	}
}
