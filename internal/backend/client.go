package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/harmonymatch/admin-gateway/internal/auth"
	"github.com/harmonymatch/admin-gateway/internal/config"
	"github.com/harmonymatch/admin-gateway/internal/models"
)

// Client talks to the remote matrimony admin API. Every call is normalized
// into a Result: transport failures and non-2xx responses become
// success=false with a best-effort message, never a raised error. The
// operator's bearer token is taken from the request context; if it is
// absent the call short-circuits without touching the network. There is no
// retry and no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Result is the normalized outcome of a backend call.
type Result struct {
	Success    bool
	Message    string
	StatusCode int
	Data       json.RawMessage
}

// Err maps a failed Result onto the gateway's sentinel errors. A successful
// Result yields nil.
func (r Result) Err() error {
	switch {
	case r.Success:
		return nil
	case r.StatusCode == 0:
		if r.Message == noTokenMessage {
			return models.ErrNotAuthenticated
		}
		return models.ErrBackendUnavailable
	case r.StatusCode == http.StatusUnauthorized:
		return models.ErrUnauthorized
	case r.StatusCode == http.StatusForbidden:
		return models.ErrForbidden
	case r.StatusCode == http.StatusNotFound:
		return models.ErrNotFound
	case r.StatusCode >= 500:
		return models.ErrBackendUnavailable
	default:
		return models.ErrBadRequest
	}
}

// Decode unmarshals the response body into v.
func (r Result) Decode(v interface{}) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("empty response body")
	}
	return json.Unmarshal(r.Data, v)
}

const noTokenMessage = "Authentication required"

func NewClient(cfg config.BackendConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// request options assembled by the verb helpers
type call struct {
	method      string
	endpoint    string
	body        io.Reader
	contentType string
	params      url.Values
	public      bool // skip the bearer token (login only)
}

func (c *Client) do(ctx context.Context, cl call) Result {
	var token string
	if !cl.public {
		var ok bool
		token, ok = auth.TokenFromContext(ctx)
		if !ok {
			return Result{Success: false, Message: noTokenMessage}
		}
	}

	reqURL := c.baseURL + cl.endpoint
	if len(cl.params) > 0 {
		reqURL += "?" + cl.params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, reqURL, cl.body)
	if err != nil {
		return Result{Success: false, Message: "invalid request: " + err.Error()}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			slog.String("method", cl.method),
			slog.String("endpoint", cl.endpoint),
			slog.Any("error", err),
		)
		return Result{Success: false, Message: "backend unreachable"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{
			Success:    false,
			Message:    "failed to read backend response",
			StatusCode: resp.StatusCode,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{
			Success:    false,
			Message:    extractErrorMessage(body, resp.Status),
			StatusCode: resp.StatusCode,
		}
	}

	return Result{Success: true, StatusCode: resp.StatusCode, Data: body}
}

// extractErrorMessage pulls a human-readable message out of an error
// payload. The backend variously uses "detail", "message" and "error".
func extractErrorMessage(body []byte, status string) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if v, ok := payload[key].(string); ok && v != "" {
				return v
			}
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" && len(s) <= 200 && !strings.HasPrefix(s, "<") {
		return s
	}
	return status
}

// Verb helpers

func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) Result {
	return c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, params: params})
}

func (c *Client) Delete(ctx context.Context, endpoint string, params url.Values) Result {
	return c.do(ctx, call{method: http.MethodDelete, endpoint: endpoint, params: params})
}

func (c *Client) PostJSON(ctx context.Context, endpoint string, payload interface{}) Result {
	return c.sendJSON(ctx, http.MethodPost, endpoint, payload)
}

func (c *Client) PutJSON(ctx context.Context, endpoint string, payload interface{}) Result {
	return c.sendJSON(ctx, http.MethodPut, endpoint, payload)
}

func (c *Client) sendJSON(ctx context.Context, method, endpoint string, payload interface{}) Result {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return Result{Success: false, Message: "failed to encode request: " + err.Error()}
		}
		body = bytes.NewReader(encoded)
	}
	return c.do(ctx, call{
		method:      method,
		endpoint:    endpoint,
		body:        body,
		contentType: "application/json",
	})
}

// PutForm sends an x-www-form-urlencoded body; the single-user update
// endpoint only accepts this encoding.
func (c *Client) PutForm(ctx context.Context, endpoint string, form url.Values) Result {
	return c.do(ctx, call{
		method:      http.MethodPut,
		endpoint:    endpoint,
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
}

// PostQuery issues a POST with query parameters and no body (the
// change-password endpoint's calling convention).
func (c *Client) PostQuery(ctx context.Context, endpoint string, params url.Values) Result {
	return c.do(ctx, call{method: http.MethodPost, endpoint: endpoint, params: params})
}

// SendMultipart issues a POST or PUT with multipart form fields and an
// optional file part, used by the banner endpoints.
func (c *Client) SendMultipart(ctx context.Context, method, endpoint string, fields map[string]string, fileName string, file io.Reader) Result {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return Result{Success: false, Message: "failed to encode form field: " + err.Error()}
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			return Result{Success: false, Message: "failed to encode file part: " + err.Error()}
		}
		if _, err := io.Copy(part, file); err != nil {
			return Result{Success: false, Message: "failed to read upload: " + err.Error()}
		}
	}
	if err := mw.Close(); err != nil {
		return Result{Success: false, Message: "failed to finalize upload: " + err.Error()}
	}

	return c.do(ctx, call{
		method:      method,
		endpoint:    endpoint,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	})
}

// Login exchanges operator credentials for a bearer token. This is the one
// unauthenticated call; the backend expects form-encoded username/password.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResult, Result) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	res := c.do(ctx, call{
		method:      http.MethodPost,
		endpoint:    "/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		public:      true,
	})
	if !res.Success {
		return nil, res
	}

	var login models.LoginResult
	if err := res.Decode(&login); err != nil || login.AccessToken == "" {
		res.Success = false
		res.Message = "login did not return an access token"
		return nil, res
	}

	return &login, res
}
