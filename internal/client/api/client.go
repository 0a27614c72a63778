package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/enable/pkg/api"
)

// Error представляет ответ сервера с ошибкой
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d %s)", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("server error (%d %s): %s", e.StatusCode, e.Code, e.Message)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент
// token - operator bearer токен, может быть пустым
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// AddUser регистрирует пользователя с ключевой парой
func (c *Client) AddUser(ctx context.Context, req api.AddUserRequest) (*api.AddUserResponse, error) {
	var resp api.AddUserResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/users", req, &resp); err != nil {
		return nil, fmt.Errorf("add user request failed: %w", err)
	}
	return &resp, nil
}

// AddLogin выпускает challenge для пользователя
func (c *Client) AddLogin(ctx context.Context, req api.AddLoginRequest) (*api.AddLoginResponse, error) {
	var resp api.AddLoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/logins", req, &resp); err != nil {
		return nil, fmt.Errorf("add login request failed: %w", err)
	}
	return &resp, nil
}

// Sign погашает challenge и возвращает подпись сообщения
func (c *Client) Sign(ctx context.Context, req api.SignRequest) (*api.SignResponse, error) {
	var resp api.SignResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sign", req, &resp); err != nil {
		return nil, fmt.Errorf("sign request failed: %w", err)
	}
	return &resp, nil
}

// Health запрашивает состояние сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Code != "" {
			return &Error{StatusCode: resp.StatusCode, Code: errResp.Code, Message: errResp.Message}
		}
		return &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
