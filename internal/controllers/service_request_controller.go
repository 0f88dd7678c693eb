package controllers

import (
	"errors"
	"net/http"

	"github.com/fieldserve/backend/internal/logger"
	"github.com/fieldserve/backend/internal/models"
	"github.com/fieldserve/backend/internal/store"
	"github.com/gin-gonic/gin"
)

type ServiceRequestController struct {
	requests store.ServiceRequestStore
}

func NewServiceRequestController(requests store.ServiceRequestStore) *ServiceRequestController {
	return &ServiceRequestController{requests: requests}
}

type CreateServiceRequestRequest struct {
	ServiceName       string                      `json:"serviceName" binding:"required"`
	CustomerName      string                      `json:"customerName" binding:"required"`
	Phone             string                      `json:"phone"`
	Email             string                      `json:"email"`
	CompanyName       string                      `json:"companyName"`
	ScheduledDateTime string                      `json:"scheduledDateTime"`
	AssignedTo        string                      `json:"assignedTo"`
	Status            models.ServiceRequestStatus `json:"status" binding:"required,srstatus"`
}

type UpdateServiceRequestRequest struct {
	Comments      string                      `json:"comments"`
	Status        models.ServiceRequestStatus `json:"status" binding:"required,srstatus"`
	Signature     string                      `json:"signature"`
	AudioFeedback string                      `json:"audioFeedback"`
	VideoFeedback string                      `json:"videoFeedback"`
}

// CreateServiceRequest creates a new service request owned by the caller.
func (sc *ServiceRequestController) CreateServiceRequest(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	serviceRequest := models.ServiceRequest{
		ServiceName:       req.ServiceName,
		CustomerName:      req.CustomerName,
		Phone:             req.Phone,
		Email:             req.Email,
		CompanyName:       req.CompanyName,
		ScheduledDateTime: req.ScheduledDateTime,
		AssignedTo:        req.AssignedTo,
		Status:            req.Status,
		CreatedByID:       userID.(uint),
	}

	if err := sc.requests.Create(&serviceRequest); err != nil {
		logger.WithError(err, "service_request_controller").Error("Failed to create service request")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating service request"})
		return
	}

	c.JSON(http.StatusCreated, serviceRequest)
}

// GetServiceRequests returns all service requests with the creator resolved
// to a display name.
func (sc *ServiceRequestController) GetServiceRequests(c *gin.Context) {
	requests, err := sc.requests.All()
	if err != nil {
		logger.WithError(err, "service_request_controller").Error("Failed to fetch service requests")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching service requests"})
		return
	}

	response := make([]gin.H, 0, len(requests))
	for _, sr := range requests {
		createdByName := ""
		if sr.CreatedBy != nil {
			createdByName = sr.CreatedBy.DisplayName()
		}
		response = append(response, gin.H{
			"id":                sr.ID,
			"serviceName":       sr.ServiceName,
			"customerName":      sr.CustomerName,
			"phone":             sr.Phone,
			"email":             sr.Email,
			"companyName":       sr.CompanyName,
			"scheduledDateTime": sr.ScheduledDateTime,
			"assignedTo":        sr.AssignedTo,
			"status":            sr.Status,
			"comments":          sr.Comments,
			"signature":         sr.Signature,
			"audioFeedback":     sr.AudioFeedback,
			"videoFeedback":     sr.VideoFeedback,
			"createdById":       sr.CreatedByID,
			"createdByName":     createdByName,
			"createdAt":         sr.CreatedAt,
			"updatedAt":         sr.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// UpdateServiceRequest applies the mutable field whitelist to a record the
// caller owns. The ownership check happens inside the store as a conditional
// update, so a non-creator can never cause a write.
func (sc *ServiceRequestController) UpdateServiceRequest(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req UpdateServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated, err := sc.requests.UpdateOwned(c.Param("id"), userID.(uint), store.UpdateFields{
		Comments:      req.Comments,
		Status:        req.Status,
		Signature:     req.Signature,
		AudioFeedback: req.AudioFeedback,
		VideoFeedback: req.VideoFeedback,
	})

	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Service request not found"})
	case errors.Is(err, store.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only update service requests you created."})
	case err != nil:
		// Full detail stays in the server log; the response carries a fixed
		// message only.
		logger.WithError(err, "service_request_controller").Error("Failed to update service request")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating service request"})
	default:
		c.JSON(http.StatusOK, updated)
	}
}
