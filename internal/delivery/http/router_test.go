package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medsync/config"
	"medsync/internal/delivery/dto"
	"medsync/internal/delivery/http/handler"
	"medsync/internal/delivery/http/middleware"
	"medsync/internal/domain/entity"
	"medsync/internal/service"
	"medsync/internal/usecase"
	"medsync/pkg/jwt"
	"medsync/pkg/response"
	"medsync/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthUsecase struct {
	loginErr   error
	refreshErr error
	loggedOut  []string
}

func (s *stubAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, nil
}

func (s *stubAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, req *dto.LogoutRequest) error {
	s.loggedOut = append(s.loggedOut, accessTokenID)
	return nil
}

func (s *stubAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return &dto.TokenResponse{AccessToken: "a2", RefreshToken: "r2", ExpiresIn: 900}, nil
}

type stubProfileUsecase struct {
	appendErr error
	requests  []*dto.AppendDoctorRequest
}

func (s *stubProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	return &dto.ProfileResponse{Kind: dto.ProfileKindHospital, Hospital: &dto.HospitalProfileResponse{ID: userID, Name: "City Hospital"}}, nil
}

func (s *stubProfileUsecase) AppendDoctor(ctx context.Context, userID uuid.UUID, req *dto.AppendDoctorRequest) (*dto.HospitalProfileResponse, error) {
	s.requests = append(s.requests, req)
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	return &dto.HospitalProfileResponse{ID: userID, Doctors: []dto.DoctorResponse{{Name: req.Doctor.Name}}}, nil
}

func (s *stubProfileUsecase) ListDoctors(ctx context.Context, userID uuid.UUID) (*dto.DoctorListResponse, error) {
	return &dto.DoctorListResponse{Doctors: []dto.DoctorResponse{}}, nil
}

type stubTokens struct {
	revoked bool
}

func (s *stubTokens) Exists(ctx context.Context, kind string, userID uuid.UUID, tokenID string) (bool, error) {
	return !s.revoked, nil
}

type routerFixture struct {
	handler  http.Handler
	jwt      *jwt.JWTService
	auth     *stubAuthUsecase
	profiles *stubProfileUsecase
	tokens   *stubTokens
	metrics  *service.MetricsService
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{
		jwt:      jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour}),
		auth:     &stubAuthUsecase{},
		profiles: &stubProfileUsecase{},
		tokens:   &stubTokens{},
		metrics:  service.NewMetricsService(),
	}
	v := validator.NewValidator()

	r := NewRouter(
		handler.NewAuthHandler(f.auth, v),
		handler.NewProfileHandler(f.profiles, v),
		middleware.NewAuthMiddleware(f.jwt, f.tokens),
		middleware.NewCORSMiddleware(),
		middleware.NewMetricsMiddleware(f.metrics),
		f.metrics.Handler(),
	)
	f.handler = r.Setup()
	return f
}

func (f *routerFixture) token(t *testing.T, userID uuid.UUID, roleID int) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(userID, "user@example.com", roleID)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func validAppendBody(id uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"id": id,
		"doctor": map[string]interface{}{
			"name":        "Dr. A",
			"department":  "Cardiology",
			"phone":       "555-0100",
			"opdSchedule": map[string]interface{}{"monday": "8:00 AM - 10:00 AM", "tuesday": nil},
		},
	}
}

func TestHealth(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodGet, "/api/v1/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRoute(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@b.co", "password": "x"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.auth.loginErr = usecase.ErrInvalidCredentials
	rec = f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@b.co", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshTokenRoute(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{"refresh_token": "r"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"a2"`)

	rec = f.do(http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.auth.refreshErr = usecase.ErrTokenRevoked
	rec = f.do(http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{"refresh_token": "r"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, usecase.ErrTokenRevoked.Error(), decode(t, rec).Message)
}

func TestLogoutRoute(t *testing.T) {
	f := newRouterFixture()
	token := f.token(t, uuid.New(), entity.RoleIDPatient)

	rec := f.do(http.MethodPost, "/api/v1/auth/logout", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, f.auth.loggedOut, 1)
}

func TestProfileRequiresToken(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	f.tokens.revoked = true
	rec = f.do(http.MethodGet, "/api/v1/profile", f.token(t, uuid.New(), entity.RoleIDHospital), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", decode(t, rec).Message)
}

func TestGetProfileRoute(t *testing.T) {
	f := newRouterFixture()
	id := uuid.New()

	rec := f.do(http.MethodGet, "/api/v1/profile", f.token(t, id, entity.RoleIDHospital), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"hospital"`)
	assert.Contains(t, rec.Body.String(), id.String())
}

func TestAppendDoctorRoute(t *testing.T) {
	f := newRouterFixture()
	id := uuid.New()

	rec := f.do(http.MethodPost, "/api/v1/profile/doctors", f.token(t, id, entity.RoleIDHospital), validAppendBody(id))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, f.profiles.requests, 1)
	req := f.profiles.requests[0]
	assert.Equal(t, id, req.ID)
	assert.Equal(t, entity.WeeklySchedule{entity.Monday: "8:00 AM - 10:00 AM"}, req.Doctor.OPDSchedule)
}

func TestAppendDoctorRouteForbiddenForPatients(t *testing.T) {
	f := newRouterFixture()
	id := uuid.New()

	rec := f.do(http.MethodPost, "/api/v1/profile/doctors", f.token(t, id, entity.RoleIDPatient), validAppendBody(id))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.profiles.requests)
}

func TestAppendDoctorRouteValidation(t *testing.T) {
	f := newRouterFixture()
	id := uuid.New()
	token := f.token(t, id, entity.RoleIDHospital)

	body := validAppendBody(id)
	body["doctor"].(map[string]interface{})["opdSchedule"] = map[string]interface{}{"monday": "Not Available"}
	rec := f.do(http.MethodPost, "/api/v1/profile/doctors", token, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least one day required")

	body = validAppendBody(id)
	body["doctor"].(map[string]interface{})["department"] = "Astrology"
	rec = f.do(http.MethodPost, "/api/v1/profile/doctors", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = validAppendBody(id)
	body["doctor"].(map[string]interface{})["opdSchedule"] = map[string]interface{}{"someday": "8:00 AM - 10:00 AM"}
	rec = f.do(http.MethodPost, "/api/v1/profile/doctors", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, f.profiles.requests)
}

func TestAppendDoctorRouteErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{usecase.ErrForeignRoster, http.StatusForbidden},
		{usecase.ErrHospitalNotFound, http.StatusNotFound},
		{usecase.ErrDepartmentNotOffered, http.StatusBadRequest},
		{usecase.ErrDepartmentAtCapacity, http.StatusConflict},
		{usecase.ErrRosterConflict, http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			f := newRouterFixture()
			f.profiles.appendErr = tt.err
			id := uuid.New()

			rec := f.do(http.MethodPost, "/api/v1/profile/doctors", f.token(t, id, entity.RoleIDHospital), validAppendBody(id))

			assert.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusInternalServerError {
				assert.Equal(t, tt.err.Error(), decode(t, rec).Message)
			}
		})
	}
}

func TestListDoctorsRoute(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(http.MethodGet, "/api/v1/profile/doctors", f.token(t, uuid.New(), entity.RoleIDHospital), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	f := newRouterFixture()
	f.do(http.MethodGet, "/api/v1/health", "", nil)

	rec := f.do(http.MethodGet, "/api/v1/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `http_requests_total{method="GET",path="/api/v1/health",status="200"} 1`))
}
