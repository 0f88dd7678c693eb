package store

import (
	"errors"

	"github.com/fieldserve/backend/internal/models"
)

var (
	// ErrNotFound means no service request exists under the given id.
	ErrNotFound = errors.New("service request not found")
	// ErrAccessDenied means the record exists but belongs to another creator.
	ErrAccessDenied = errors.New("access denied")
)

// UpdateFields is the whitelist of mutable service request fields. Everything
// else on the record is immutable after creation.
type UpdateFields struct {
	Comments      string
	Status        models.ServiceRequestStatus
	Signature     string
	AudioFeedback string
	VideoFeedback string
}

type ServiceRequestStore interface {
	Create(sr *models.ServiceRequest) error
	All() ([]models.ServiceRequest, error)
	GetByID(id string) (*models.ServiceRequest, error)
	// UpdateOwned applies fields to the record only when it is owned by userID.
	// The ownership check and the write are a single conditional update, so a
	// concurrent write cannot slip between check and persist. Returns
	// ErrNotFound or ErrAccessDenied when nothing was written.
	UpdateOwned(id string, userID uint, fields UpdateFields) (*models.ServiceRequest, error)
}

type UserStore interface {
	Create(u *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
