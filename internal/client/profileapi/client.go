package profileapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medsync/internal/delivery/dto"
	"medsync/internal/roster"

	"github.com/google/uuid"
)

// Client talks to the profile service over HTTP
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialProvider
}

var _ roster.ProfileService = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client, credentials CredentialProvider) *Client {
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		credentials: credentials,
	}
}

func DefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) GetProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	var profile dto.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) AppendDoctor(ctx context.Context, hospitalID uuid.UUID, draft roster.Draft) (*dto.HospitalProfileResponse, error) {
	body := dto.AppendDoctorRequest{
		ID: hospitalID,
		Doctor: dto.DoctorDraftRequest{
			Name:        draft.Name,
			Department:  draft.Department,
			Phone:       draft.Phone,
			OPDSchedule: draft.Schedule.Normalize(),
		},
	}

	var profile dto.HospitalProfileResponse
	if err := c.do(ctx, http.MethodPost, "/profile/doctors", body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if c.baseURL == "" {
		return ErrMissingBaseURL
	}
	if c.credentials == nil {
		return ErrMissingCredential
	}

	token, err := c.credentials.Token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("profile service request failed: %w", err)
	}
	defer resp.Body.Close()

	var body envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{StatusCode: resp.StatusCode, Message: body.Message}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode profile service response: %w", decodeErr)
	}
	if len(body.Data) == 0 || string(body.Data) == "null" {
		return ErrEmptyResponse
	}

	return json.Unmarshal(body.Data, out)
}
