package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRequestStatus string

const (
	StatusPending    ServiceRequestStatus = "Pending"
	StatusInProgress ServiceRequestStatus = "In Progress"
	StatusCompleted  ServiceRequestStatus = "Completed"
	StatusCancelled  ServiceRequestStatus = "Cancelled"
	StatusOnHold     ServiceRequestStatus = "On Hold"
)

// StatusOptions returns the full status enumeration in display order.
func StatusOptions() []ServiceRequestStatus {
	return []ServiceRequestStatus{
		StatusPending,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
		StatusOnHold,
	}
}

func (s ServiceRequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusOnHold:
		return true
	}
	return false
}

type ServiceRequest struct {
	ID                string               `json:"id" gorm:"primaryKey;size:36"`
	ServiceName       string               `json:"serviceName" gorm:"not null"`
	CustomerName      string               `json:"customerName" gorm:"not null"`
	Phone             string               `json:"phone"`
	Email             string               `json:"email"`
	CompanyName       string               `json:"companyName"`
	ScheduledDateTime string               `json:"scheduledDateTime"`
	AssignedTo        string               `json:"assignedTo"`
	Status            ServiceRequestStatus `json:"status" gorm:"not null;default:'Pending'"`
	Comments          string               `json:"comments" gorm:"type:text"`
	Signature         string               `json:"signature" gorm:"type:text"`
	AudioFeedback     string               `json:"audioFeedback"`
	VideoFeedback     string               `json:"videoFeedback"`
	CreatedByID       uint                 `json:"createdById" gorm:"not null;index"`
	CreatedBy         *User                `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}

func (sr *ServiceRequest) BeforeCreate(_ *gorm.DB) error {
	if sr.ID == "" {
		sr.ID = uuid.NewString()
	}
	return nil
}
