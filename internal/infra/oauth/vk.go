package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	vkTokenURL    = "https://oauth.vk.com/access_token"
	vkUserInfoURL = "https://api.vk.com/method/users.get"

	// API version pinned to the last one the users.get shape was
	// verified against.
	vkAPIVersion = "5.131"
)

// VKClient performs the VK OAuth code exchange and identity fetch.
type VKClient struct {
	clientID     string
	clientSecret string
	redirectURI  string

	tokenURL    string
	userInfoURL string
	httpClient  *http.Client
}

// NewVKClient creates a VK provider client from application config.
func NewVKClient(cfg *config.Config) service.ProviderClient {
	return &VKClient{
		clientID:     cfg.OAuth.VK.ClientID,
		clientSecret: cfg.OAuth.VK.ClientSecret,
		redirectURI:  cfg.OAuth.VK.RedirectURI,
		tokenURL:     vkTokenURL,
		userInfoURL:  vkUserInfoURL,
		httpClient:   &http.Client{},
	}
}

// Provider returns the provider tag this client serves.
func (c *VKClient) Provider() entity.Provider {
	return entity.ProviderVK
}

// ExchangeCode trades an authorization code for a VK access token. VK
// reports rejected codes inside a 200 response body, so an empty token
// with a nil error means the code was not accepted.
func (c *VKClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tokenURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}

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

// FetchIdentity resolves a VK access token into the external identity.
// VK's users.get does not expose the account email, so Email may be
// empty even for a valid token.
func (c *VKClient) FetchIdentity(ctx context.Context, accessToken string) (*service.ProviderIdentity, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("v", vkAPIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	var userResponse struct {
		Response []struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"response"`
		Error json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userResponse); err != nil {
		return nil, nil
	}
	if len(userResponse.Error) > 0 || len(userResponse.Response) == 0 {
		return nil, nil
	}

	return &service.ProviderIdentity{
		ExternalID: strconv.FormatInt(userResponse.Response[0].ID, 10),
		Email:      userResponse.Response[0].Email,
	}, nil
}
