package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/rachitverma/careerlens/pkg/domain"
)

// Client is the careerlens API client. The token is fixed at
// construction; the session store decides which token a page runs with.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LoginRequest is the payload for credential login. The server accepts
// the identifier in either field; Email carries both here.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token. Runs without a token.
func (c *Client) Login(ctx context.Context, identifier, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/login", LoginRequest{Email: identifier, Password: password}, &out); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("client.Login: empty token in response")
	}
	return out.Token, nil
}

// GetProfile returns the authenticated user's profile, education included.
func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var out struct {
		User domain.Profile `json:"user"`
	}
	if err := c.get(ctx, "/profile", &out); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	return &out.User, nil
}

// EditProfile sends a partial profile update. Only the fields set on the
// edit are transmitted; the server merges them into its copy. Callers
// must reload the profile afterwards — the response carries no body
// beyond an acknowledgement message.
func (c *Client) EditProfile(ctx context.Context, edit domain.ProfileEdit) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.doRequest(ctx, http.MethodPatch, "/profile/edit", edit, &out); err != nil {
		return "", fmt.Errorf("client.EditProfile: %w", err)
	}
	return out.Message, nil
}

// GetEducation returns the saved education record, or nil when none
// exists yet. Absence is not an error.
func (c *Client) GetEducation(ctx context.Context) (*domain.Education, error) {
	var out struct {
		Education *domain.Education `json:"education"`
	}
	if err := c.get(ctx, "/education/get", &out); err != nil {
		return nil, fmt.Errorf("client.GetEducation: %w", err)
	}
	return out.Education, nil
}

// SaveEducation creates or replaces the education record. Validation
// failures come back as an *APIError with a per-field map.
func (c *Client) SaveEducation(ctx context.Context, edu domain.Education) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/education/add", edu, &out); err != nil {
		return "", fmt.Errorf("client.SaveEducation: %w", err)
	}
	return out.Message, nil
}

// GetSkills returns the saved skill self-ratings for an email, or an
// empty map when none are saved.
func (c *Client) GetSkills(ctx context.Context, email string) (domain.Skills, error) {
	var out struct {
		Skills domain.Skills `json:"skills"`
	}
	if err := c.get(ctx, "/skills/get/"+url.PathEscape(email), &out); err != nil {
		return nil, fmt.Errorf("client.GetSkills: %w", err)
	}
	if out.Skills == nil {
		out.Skills = domain.Skills{}
	}
	return out.Skills, nil
}

// SaveSkills stores skill self-ratings for an email.
func (c *Client) SaveSkills(ctx context.Context, email string, skills domain.Skills) (string, error) {
	body := struct {
		Email  string        `json:"email"`
		Skills domain.Skills `json:"skills"`
	}{Email: email, Skills: skills}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/skills/add", body, &out); err != nil {
		return "", fmt.Errorf("client.SaveSkills: %w", err)
	}
	return out.Message, nil
}

// PredictRequest is the payload for a job-role prediction.
type PredictRequest struct {
	Degree         string   `json:"degree"`
	Specialization string   `json:"specialization"`
	CGPA           *float64 `json:"cgpa"`
	Certifications []string `json:"certifications"`
}

// Predict requests a ranked job-role recommendation set. The server
// contract has drifted over time and names the result set one of
// all_predictions, predictions, or result; all three decode to the same
// canonical slice here so nothing past this point sees the variance.
// An empty or absent set returns ErrMissingPrediction.
func (c *Client) Predict(ctx context.Context, req PredictRequest) ([]domain.RolePrediction, error) {
	if req.Certifications == nil {
		req.Certifications = []string{}
	}
	var out struct {
		AllPredictions []domain.RolePrediction `json:"all_predictions"`
		Predictions    []domain.RolePrediction `json:"predictions"`
		Result         []domain.RolePrediction `json:"result"`
	}
	if err := c.post(ctx, "/predict-job-role", req, &out); err != nil {
		return nil, fmt.Errorf("client.Predict: %w", err)
	}

	predictions := out.AllPredictions
	if len(predictions) == 0 {
		predictions = out.Predictions
	}
	if len(predictions) == 0 {
		predictions = out.Result
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("client.Predict: %w", ErrMissingPrediction)
	}
	return predictions, nil
}

// PredictionHistory returns the user's past predictions in the server's
// chronological append order. Presentation order is the caller's concern.
func (c *Client) PredictionHistory(ctx context.Context) ([]domain.PredictionRecord, error) {
	var records []domain.PredictionRecord
	if err := c.get(ctx, "/prediction-history", &records); err != nil {
		return nil, fmt.Errorf("client.PredictionHistory: %w", err)
	}
	return records, nil
}

// CareerInsights fetches the narrative for the current prediction. This
// is always a server round-trip — the narrative depends on server-side
// context beyond the ranked list. A response without an insight returns
// (nil, nil); the caller renders a neutral placeholder.
func (c *Client) CareerInsights(ctx context.Context) (*domain.CareerInsight, error) {
	var out struct {
		CareerInsight    *domain.CareerInsight `json:"career_insight"`
		AlternativeRoles []string              `json:"alternative_roles"`
	}
	if err := c.post(ctx, "/api/career-insights", nil, &out); err != nil {
		return nil, fmt.Errorf("client.CareerInsights: %w", err)
	}
	if out.CareerInsight == nil || out.CareerInsight.Message == "" {
		return nil, nil
	}
	insight := *out.CareerInsight
	if len(insight.AlternativeRoles) == 0 {
		insight.AlternativeRoles = out.AlternativeRoles
	}
	return &insight, nil
}

// SubmitFeedback submits a rating/comment for the given role.
func (c *Client) SubmitFeedback(ctx context.Context, role string, rating int, comment string) (string, error) {
	body := struct {
		JobRole string `json:"job_role"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}{JobRole: role, Rating: rating, Comment: comment}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/feedback", body, &out); err != nil {
		return "", fmt.Errorf("client.SubmitFeedback: %w", err)
	}
	return out.Message, nil
}

// --- Admin methods ---

// AdminPredictionLogs returns all prediction log entries. Admin only.
func (c *Client) AdminPredictionLogs(ctx context.Context) ([]domain.PredictionLogEntry, error) {
	var logs []domain.PredictionLogEntry
	if err := c.get(ctx, "/admin/prediction-logs", &logs); err != nil {
		return nil, fmt.Errorf("client.AdminPredictionLogs: %w", err)
	}
	return logs, nil
}

// AdminFeedback returns all submitted feedback. Admin only.
func (c *Client) AdminFeedback(ctx context.Context) ([]domain.FeedbackEntry, error) {
	var entries []domain.FeedbackEntry
	if err := c.get(ctx, "/admin/feedback", &entries); err != nil {
		return nil, fmt.Errorf("client.AdminFeedback: %w", err)
	}
	return entries, nil
}

// FlagPrediction marks the log entry with the given timestamp for
// review. Flagging is idempotent; callers refetch the logs afterwards
// rather than rendering the flag optimistically.
func (c *Client) FlagPrediction(ctx context.Context, timestamp string) (string, error) {
	body := struct {
		Timestamp string `json:"timestamp"`
	}{Timestamp: timestamp}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/admin/flag-prediction", body, &out); err != nil {
		return "", fmt.Errorf("client.FlagPrediction: %w", err)
	}
	return out.Message, nil
}

// UploadDataset streams a CSV training dataset to the server. Admin only.
func (c *Client) UploadDataset(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("client.UploadDataset: create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("client.UploadDataset: copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("client.UploadDataset: close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/upload-dataset", &buf)
	if err != nil {
		return "", fmt.Errorf("client.UploadDataset: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("client.UploadDataset: do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	var out struct {
		Message string `json:"message"`
	}
	if err := decodeResponse(resp, &out); err != nil {
		return "", fmt.Errorf("client.UploadDataset: %w", err)
	}
	return out.Message, nil
}

// RetrainModel asks the server to retrain on the current dataset. Admin only.
func (c *Client) RetrainModel(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/admin/retrain-model", nil, &out); err != nil {
		return "", fmt.Errorf("client.RetrainModel: %w", err)
	}
	return out.Message, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) setCommonHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	return decodeResponse(resp, out)
}

// decodeResponse decodes a success body into out, or a failure body into
// an *APIError. Failure bodies vary by endpoint: most send {"error"},
// the prediction path sends {"message"}, and education validation sends
// {"errors": {field: msg}} — all three normalize here.
func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string            `json:"error"`
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			switch {
			case len(apiErr.Errors) > 0:
				return &APIError{StatusCode: resp.StatusCode, Message: "validation failed", Fields: apiErr.Errors}
			case apiErr.Error != "":
				return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			case apiErr.Message != "":
				return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
