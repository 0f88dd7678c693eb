package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldserve/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitUpdateSuccess(t *testing.T) {
	var gotAuth string
	var gotPayload UpdatePayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/service-requests/sr-1", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ServiceRequest{
			ID:       "sr-1",
			Status:   models.StatusCompleted,
			Comments: gotPayload.Comments,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("test-token")

	updated, err := c.SubmitUpdate(context.Background(), "sr-1", UpdatePayload{
		Comments:      "Replaced filter",
		Status:        models.StatusCompleted,
		Signature:     "data:image/png;base64,abc",
		VideoFeedback: "",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "Replaced filter", gotPayload.Comments)
	assert.Equal(t, models.StatusCompleted, gotPayload.Status)
	assert.Equal(t, "data:image/png;base64,abc", gotPayload.Signature)
	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestSubmitUpdatePermissionDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "Access denied. You can only update service requests you created."})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("test-token")

	_, err := c.SubmitUpdate(context.Background(), "sr-1", UpdatePayload{Status: models.StatusCompleted})

	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSubmitUpdateCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Service request not found"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.SubmitUpdate(context.Background(), "missing", UpdatePayload{Status: models.StatusCompleted})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Service request not found", apiErr.Message)
}

func TestSubmitUpdateFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.SubmitUpdate(context.Background(), "sr-1", UpdatePayload{Status: models.StatusCompleted})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to update service request", apiErr.Message)
}

func TestSubmitUpdateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL)

	_, err := c.SubmitUpdate(context.Background(), "sr-1", UpdatePayload{Status: models.StatusCompleted})

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must not look like server responses")
	assert.NotErrorIs(t, err, ErrPermissionDenied)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(LoginResponse{Success: true, Token: "issued-token"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	resp, err := c.Login(context.Background(), "tech@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "issued-token", resp.Token)
	assert.Equal(t, "issued-token", c.Token())
}
