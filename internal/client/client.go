// Package client is the technician-side HTTP layer: a bearer-authenticated
// API client for the FieldServe backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fieldserve/backend/internal/models"
)

// ErrPermissionDenied is returned when the server answers 403: the caller is
// not the creator of the record. The payload must not be retried.
var ErrPermissionDenied = errors.New("permission denied")

// APIError carries a non-2xx server response. Transport failures are returned
// as plain wrapped errors, never as *APIError, so callers can tell the two
// apart with errors.As.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// UpdatePayload mirrors the update form: the four fields the technician can
// change. Signature is always present, empty string when unset.
type UpdatePayload struct {
	Comments      string                      `json:"comments"`
	Status        models.ServiceRequestStatus `json:"status"`
	Signature     string                      `json:"signature"`
	VideoFeedback string                      `json:"videoFeedback"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// ListServiceRequests fetches every service request, creator names resolved.
func (c *Client) ListServiceRequests(ctx context.Context) ([]ServiceRequestListItem, error) {
	var items []ServiceRequestListItem
	if err := c.do(ctx, http.MethodGet, "/api/service-requests", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ServiceRequestListItem is a listing row with the denormalized creator name.
type ServiceRequestListItem struct {
	ID                string                      `json:"id"`
	ServiceName       string                      `json:"serviceName"`
	CustomerName      string                      `json:"customerName"`
	Phone             string                      `json:"phone"`
	Email             string                      `json:"email"`
	CompanyName       string                      `json:"companyName"`
	ScheduledDateTime string                      `json:"scheduledDateTime"`
	AssignedTo        string                      `json:"assignedTo"`
	Status            models.ServiceRequestStatus `json:"status"`
	Comments          string                      `json:"comments"`
	Signature         string                      `json:"signature"`
	VideoFeedback     string                      `json:"videoFeedback"`
	CreatedByName     string                      `json:"createdByName"`
}

type CreateRequest struct {
	ServiceName       string                      `json:"serviceName"`
	CustomerName      string                      `json:"customerName"`
	Phone             string                      `json:"phone"`
	Email             string                      `json:"email"`
	CompanyName       string                      `json:"companyName"`
	ScheduledDateTime string                      `json:"scheduledDateTime"`
	AssignedTo        string                      `json:"assignedTo"`
	Status            models.ServiceRequestStatus `json:"status"`
}

func (c *Client) CreateServiceRequest(ctx context.Context, req CreateRequest) (*models.ServiceRequest, error) {
	var sr models.ServiceRequest
	if err := c.do(ctx, http.MethodPost, "/api/service-requests", req, &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// SubmitUpdate sends the update payload for the given record. Outcomes:
// a 2xx answer yields the server-confirmed record, 403 yields
// ErrPermissionDenied, any other non-2xx yields *APIError with the server
// message, and transport failures come back as plain wrapped errors.
func (c *Client) SubmitUpdate(ctx context.Context, id string, payload UpdatePayload) (*models.ServiceRequest, error) {
	var sr models.ServiceRequest
	if err := c.do(ctx, http.MethodPut, "/api/service-requests/"+id, payload, &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusForbidden {
		return ErrPermissionDenied
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(respBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// serverMessage extracts the message field from an error body, falling back
// to a generic message when the body carries none.
func serverMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return "Failed to update service request"
}
