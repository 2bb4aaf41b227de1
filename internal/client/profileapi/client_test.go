package profileapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medsync/internal/delivery/dto"
	"medsync/internal/domain/entity"
	"medsync/internal/roster"
	"medsync/pkg/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGetProfile(t *testing.T) {
	hospitalID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/profile", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		response.Success(w, http.StatusOK, "Profile retrieved successfully", dto.ProfileResponse{
			Kind:     dto.ProfileKindHospital,
			Hospital: &dto.HospitalProfileResponse{ID: hospitalID, Name: "City Hospital"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/v1/", srv.Client(), StaticToken("secret"))
	profile, err := client.GetProfile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.ProfileKindHospital, profile.Kind)
	require.NotNil(t, profile.Hospital)
	assert.Equal(t, hospitalID, profile.Hospital.ID)
	assert.Nil(t, profile.Patient)
}

func TestClientAppendDoctor(t *testing.T) {
	hospitalID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/profile/doctors", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.JSONEq(t, `"`+hospitalID.String()+`"`, string(req["id"]))
		assert.JSONEq(t, `{
			"name": "Dr. A",
			"department": "Cardiology",
			"phone": "555-0100",
			"opdSchedule": {"monday": "8:00 AM - 10:00 AM"}
		}`, string(req["doctor"]))

		response.Success(w, http.StatusCreated, "Doctor added successfully", dto.HospitalProfileResponse{
			ID: hospitalID,
			Doctors: []dto.DoctorResponse{{
				Name:        "Dr. A",
				Department:  "Cardiology",
				Phone:       "555-0100",
				OPDSchedule: entity.WeeklySchedule{entity.Monday: "8:00 AM - 10:00 AM"},
			}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, StaticToken("secret"))
	profile, err := client.AppendDoctor(context.Background(), hospitalID, roster.Draft{
		Name:       "Dr. A",
		Department: "Cardiology",
		Phone:      "555-0100",
		Schedule:   entity.WeeklySchedule{entity.Monday: "8:00 AM - 10:00 AM", entity.Tuesday: entity.SlotUnavailable},
	})

	require.NoError(t, err)
	require.Len(t, profile.Doctors, 1)
	assert.Equal(t, "Dr. A", profile.Doctors[0].Name)
}

func TestClientServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusConflict, "department already staffed at capacity", nil)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), StaticToken("secret"))
	_, err := client.AppendDoctor(context.Background(), uuid.New(), roster.Draft{})

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusConflict, serr.StatusCode)
	assert.Equal(t, "department already staffed at capacity", roster.Reason(err))
}

func TestClientServiceErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), StaticToken("secret"))
	_, err := client.GetProfile(context.Background())

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadGateway, serr.StatusCode)
	assert.Empty(t, roster.Reason(err))
	assert.Contains(t, err.Error(), "502")
}

func TestClientEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, "ok", nil)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), StaticToken("secret"))
	_, err := client.GetProfile(context.Background())

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClientMissingConfiguration(t *testing.T) {
	_, err := NewClient("", nil, StaticToken("secret")).GetProfile(context.Background())
	assert.ErrorIs(t, err, ErrMissingBaseURL)

	_, err = NewClient("http://localhost", nil, StaticToken("  ")).GetProfile(context.Background())
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = NewClient("http://localhost", nil, nil).GetProfile(context.Background())
	assert.ErrorIs(t, err, ErrMissingCredential)
}

type failingCredentials struct{}

func (failingCredentials) Token(ctx context.Context) (string, error) {
	return "", errors.New("keychain locked")
}

func TestClientCredentialError(t *testing.T) {
	_, err := NewClient("http://localhost", nil, failingCredentials{}).GetProfile(context.Background())
	assert.EqualError(t, err, "keychain locked")
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil, StaticToken("secret")).GetProfile(context.Background())

	require.Error(t, err)
	assert.Empty(t, roster.Reason(err))
}
