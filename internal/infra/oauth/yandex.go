package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	yandexTokenURL    = "https://oauth.yandex.ru/token"
	yandexUserInfoURL = "https://login.yandex.ru/info"
)

// YandexClient performs the Yandex OAuth code exchange and identity fetch.
type YandexClient struct {
	clientID     string
	clientSecret string

	tokenURL    string
	userInfoURL string
	httpClient  *http.Client
}

// NewYandexClient creates a Yandex provider client from application config.
func NewYandexClient(cfg *config.Config) service.ProviderClient {
	return &YandexClient{
		clientID:     cfg.OAuth.Yandex.ClientID,
		clientSecret: cfg.OAuth.Yandex.ClientSecret,
		tokenURL:     yandexTokenURL,
		userInfoURL:  yandexUserInfoURL,
		httpClient:   &http.Client{},
	}
}

// Provider returns the provider tag this client serves.
func (c *YandexClient) Provider() entity.Provider {
	return entity.ProviderYandex
}

// ExchangeCode trades an authorization code for a Yandex access token.
// An empty token with a nil error means the code was not accepted.
func (c *YandexClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to exchange code for token")
	}
	defer resp.Body.Close()

	var tokenResponse struct {
		AccessToken string          `json:"access_token"`
		Error       json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", nil
	}
	if len(tokenResponse.Error) > 0 {
		return "", nil
	}

	return tokenResponse.AccessToken, nil
}

// FetchIdentity resolves a Yandex access token into the external identity.
func (c *YandexClient) FetchIdentity(ctx context.Context, accessToken string) (*service.ProviderIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL+"?format=json", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "OAuth "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	var userResponse struct {
		ID           string          `json:"id"`
		DefaultEmail string          `json:"default_email"`
		Error        json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userResponse); err != nil {
		return nil, nil
	}
	if len(userResponse.Error) > 0 || userResponse.ID == "" {
		return nil, nil
	}

	return &service.ProviderIdentity{
		ExternalID: userResponse.ID,
		Email:      userResponse.DefaultEmail,
	}, nil
}
