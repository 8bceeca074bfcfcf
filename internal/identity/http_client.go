package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPClient implementa Provider contra una API GoTrue-compatible
// (Supabase auth). anonKey firma las operaciones públicas; serviceKey
// habilita el lookup administrativo por email.
type HTTPClient struct {
	baseURL    string
	anonKey    string
	serviceKey string
	client     *http.Client
	logger     *zap.Logger
}

// NewHTTPClient construye un cliente apuntando al proveedor de identidad.
func NewHTTPClient(baseURL, anonKey, serviceKey string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

func (c *HTTPClient) SignUp(ctx context.Context, input SignUpInput) (User, error) {
	body := map[string]any{
		"email":    input.Email,
		"password": input.Password,
		"data":     input.Metadata,
	}

	var resp struct {
		ID string `json:"id"`
		User
		// GoTrue < v2 anida el usuario; versiones nuevas lo devuelven plano.
		Nested *User `json:"user"`
	}
	status, raw, err := c.do(ctx, http.MethodPost, "/auth/v1/signup", c.anonKey, "", body)
	if err != nil {
		return User{}, err
	}
	if status >= 400 {
		if apiErr := parseAPIError(raw); apiErr != "" {
			if strings.Contains(apiErr, "already registered") {
				return User{}, ErrUserExists
			}
			return User{}, fmt.Errorf("identity signup: %s", apiErr)
		}
		return User{}, fmt.Errorf("identity signup: status=%d", status)
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return User{}, fmt.Errorf("identity signup: unmarshal: %w", err)
	}
	if resp.Nested != nil {
		return *resp.Nested, nil
	}
	if resp.ID == "" && resp.User.ID == "" {
		return User{}, fmt.Errorf("identity signup: empty user in response")
	}
	if resp.User.ID == "" {
		resp.User.ID = resp.ID
	}
	return resp.User, nil
}

func (c *HTTPClient) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}

	status, raw, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.anonKey, "", body)
	if err != nil {
		return Session{}, err
	}
	if status >= 400 {
		apiErr := parseAPIError(raw)
		switch {
		case strings.Contains(apiErr, "not confirmed"), strings.Contains(apiErr, "email_not_confirmed"):
			return Session{}, ErrEmailNotConfirmed
		case status == http.StatusBadRequest, status == http.StatusUnauthorized:
			return Session{}, ErrInvalidCredentials
		default:
			return Session{}, fmt.Errorf("identity signin: status=%d %s", status, apiErr)
		}
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("identity signin: unmarshal: %w", err)
	}
	if sess.AccessToken == "" {
		return Session{}, ErrInvalidCredentials
	}
	return sess, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, accessToken string) (User, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/auth/v1/user", c.anonKey, accessToken, nil)
	if err != nil {
		return User{}, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return User{}, ErrTokenInvalid
	}
	if status >= 400 {
		return User{}, fmt.Errorf("identity get user: status=%d %s", status, parseAPIError(raw))
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return User{}, fmt.Errorf("identity get user: unmarshal: %w", err)
	}
	if user.ID == "" {
		return User{}, ErrTokenInvalid
	}
	return user, nil
}

func (c *HTTPClient) GetUserByEmail(ctx context.Context, email string) (User, error) {
	key := c.serviceKey
	if key == "" {
		key = c.anonKey
	}
	path := "/auth/v1/admin/users?email=" + url.QueryEscape(email)
	status, raw, err := c.do(ctx, http.MethodGet, path, key, key, nil)
	if err != nil {
		return User{}, err
	}
	if status >= 400 {
		return User{}, fmt.Errorf("identity admin lookup: status=%d %s", status, parseAPIError(raw))
	}

	var resp struct {
		Users []User `json:"users"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return User{}, fmt.Errorf("identity admin lookup: unmarshal: %w", err)
	}
	for _, u := range resp.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (c *HTTPClient) Resend(ctx context.Context, email string) error {
	body := map[string]string{"type": "signup", "email": email}

	status, raw, err := c.do(ctx, http.MethodPost, "/auth/v1/resend", c.anonKey, "", body)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("identity resend: status=%d %s", status, parseAPIError(raw))
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, apiKey, bearer string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("identity: marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("identity: create request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("identity: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("identity: read response: %w", err)
	}
	if resp.StatusCode >= 400 && c.logger != nil {
		c.logger.Warn("identity provider error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
	}
	return resp.StatusCode, raw, nil
}

// parseAPIError extrae el mensaje de las variantes de error que emite GoTrue.
func parseAPIError(raw []byte) string {
	var e struct {
		Error            string `json:"error"`
		ErrorCode        string `json:"error_code"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return ""
	}
	for _, s := range []string{e.ErrorCode, e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}
