package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/meridianbank/identity-gateway/internal/api/metrics"
	"github.com/meridianbank/identity-gateway/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client is the HTTP client for the legacy CRM system. Every failure it can
// absorb — nil configuration, transport errors, unparsable bodies — collapses
// into domain.ErrLegacyUnavailable; the real cause goes to the log only.
type Client struct {
	cfg    *Config
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a CRM client. A nil cfg disables the integration: every
// operation reports unavailable without a network call.
func NewClient(cfg *Config, logger zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: defaultTimeout},
		logger: logger,
	}
}

// Enabled reports whether the client has a usable configuration.
func (c *Client) Enabled() bool {
	return c.cfg != nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	LoginToken string `json:"login_token"`
}

// Login authenticates a customer's credentials against the CRM. The call
// itself carries the service token; the customer password travels only in
// the request body. The raw HTTP status is returned uninterpreted.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if c.cfg == nil {
		return nil, domain.ErrLegacyUnavailable
	}

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, c.unavailable("login", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.cfg.URL+"/login", c.cfg.APIToken, body)
	if err != nil {
		return nil, c.unavailable("login", err)
	}
	defer resp.Body.Close()

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, c.unavailable("login", err)
	}

	metrics.LegacyRequestsTotal.WithLabelValues("login", "ok").Inc()
	return &domain.LoginResult{Status: resp.StatusCode, LoginToken: lr.LoginToken}, nil
}

type profileResponse struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Address   string `json:"address"`
}

// GetProfile fetches the profile of the customer the login token belongs to.
// The token is the only credential on this call; the CRM uses it to scope the
// response to that customer.
func (c *Client) GetProfile(ctx context.Context, loginToken string) (*domain.CustomerProfile, error) {
	if c.cfg == nil {
		return nil, domain.ErrLegacyUnavailable
	}

	resp, err := c.do(ctx, http.MethodGet, c.cfg.URL+"/customers", loginToken, nil)
	if err != nil {
		return nil, c.unavailable("get_profile", err)
	}
	defer resp.Body.Close()

	var pr profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, c.unavailable("get_profile", err)
	}

	metrics.LegacyRequestsTotal.WithLabelValues("get_profile", "ok").Inc()
	return &domain.CustomerProfile{
		Status:    resp.StatusCode,
		FirstName: pr.FirstName,
		LastName:  pr.LastName,
		Address:   pr.Address,
	}, nil
}

type createCustomerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// CreateCustomer creates a customer record in the CRM using the service
// token; true iff the CRM answered 201 Created.
func (c *Client) CreateCustomer(ctx context.Context, email, password, firstName, lastName string) (bool, error) {
	if c.cfg == nil {
		return false, domain.ErrLegacyUnavailable
	}

	body, err := json.Marshal(createCustomerRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return false, c.unavailable("create_customer", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.cfg.URL+"/customers", c.cfg.APIToken, body)
	if err != nil {
		return false, c.unavailable("create_customer", err)
	}
	defer resp.Body.Close()

	metrics.LegacyRequestsTotal.WithLabelValues("create_customer", "ok").Inc()
	return resp.StatusCode == http.StatusCreated, nil
}

// ExistsCustomer reports whether a customer with this email exists in the
// CRM, using the service token; true iff the CRM answered 200 OK.
func (c *Client) ExistsCustomer(ctx context.Context, email string) (bool, error) {
	if c.cfg == nil {
		return false, domain.ErrLegacyUnavailable
	}

	resp, err := c.do(ctx, http.MethodGet, c.cfg.URL+"/customers/"+url.PathEscape(email), c.cfg.APIToken, nil)
	if err != nil {
		return false, c.unavailable("exists_customer", err)
	}
	defer resp.Body.Close()

	metrics.LegacyRequestsTotal.WithLabelValues("exists_customer", "ok").Inc()
	return resp.StatusCode == http.StatusOK, nil
}

func (c *Client) do(ctx context.Context, method, rawURL, bearer string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(bearer))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

func (c *Client) unavailable(operation string, err error) error {
	c.logger.Error().Err(err).Str("operation", operation).Msg("legacy CRM request failed")
	metrics.LegacyRequestsTotal.WithLabelValues(operation, "error").Inc()
	return domain.ErrLegacyUnavailable
}
