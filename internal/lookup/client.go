package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// TokenProvider supplies the bearer token attached to every outbound request.
// Injected instead of read from a global so the client stays testable.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider for a fixed, config-supplied token.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	return string(t), nil
}

// StatusError is a non-2xx response from the identity service. Callers can
// branch on the code to customize the user-facing message.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("identity lookup: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("identity lookup: status=%d body=%s", e.StatusCode, e.Body)
}

// PersonaMatch is the identity information a directory returns for a
// document number.
type PersonaMatch struct {
	NumeroDocumento    string `json:"numeroDocumento"`
	TipoDocIdentidadID int64  `json:"tipoDocIdentidadId"`
	Nombre             string `json:"nombreCompleto"`
}

// Client queries the external document-identity service over JSON/HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  TokenProvider
}

func NewClient(baseURL string, tokens TokenProvider, timeout time.Duration) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid identity lookup base url: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
	}, nil
}

// FindByDocumento returns the person registered under numeroDocumento, or
// (nil, nil) when the service knows nobody by that document.
func (c *Client) FindByDocumento(ctx context.Context, numeroDocumento string) (*PersonaMatch, error) {
	endpoint := c.baseURL + "/personas/" + url.PathEscape(numeroDocumento)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("identity lookup: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("identity lookup: token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity lookup: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if len(raw) == 0 {
		return nil, nil
	}
	var match PersonaMatch
	if err := json.Unmarshal(raw, &match); err != nil {
		return nil, fmt.Errorf("identity lookup: unmarshal: %w", err)
	}
	if match.NumeroDocumento == "" && match.Nombre == "" {
		return nil, nil
	}
	return &match, nil
}
