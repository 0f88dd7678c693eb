package store

import (
	"errors"
	"time"

	"github.com/fieldserve/backend/internal/models"
	"gorm.io/gorm"
)

type serviceRequestStore struct {
	db *gorm.DB
}

func NewServiceRequestStore(db *gorm.DB) ServiceRequestStore {
	return &serviceRequestStore{db: db}
}

func (s *serviceRequestStore) Create(sr *models.ServiceRequest) error {
	return s.db.Create(sr).Error
}

func (s *serviceRequestStore) All() ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	if err := s.db.Preload("CreatedBy").Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *serviceRequestStore) GetByID(id string) (*models.ServiceRequest, error) {
	var sr models.ServiceRequest
	err := s.db.Preload("CreatedBy").First(&sr, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (s *serviceRequestStore) UpdateOwned(id string, userID uint, fields UpdateFields) (*models.ServiceRequest, error) {
	res := s.db.Model(&models.ServiceRequest{}).
		Where("id = ? AND created_by_id = ?", id, userID).
		Updates(map[string]interface{}{
			"comments":       fields.Comments,
			"status":         fields.Status,
			"signature":      fields.Signature,
			"audio_feedback": fields.AudioFeedback,
			"video_feedback": fields.VideoFeedback,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Nothing matched: either the record is gone or it belongs to someone
		// else. The write already didn't happen, so this lookup only picks the
		// status code.
		var count int64
		if err := s.db.Model(&models.ServiceRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrAccessDenied
	}

	return s.GetByID(id)
}
