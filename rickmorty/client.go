package rickmorty

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public API root
const DefaultBaseURL = "https://rickandmortyapi.com/api"

// Client represents a Rick and Morty API client
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("rickmorty base URL is required")
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildURL joins the base URL with an endpoint and optional query parameters
func (c *Client) buildURL(endpoint string, params url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return "", newError(KindInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", newError(KindInvalidURL, fmt.Errorf("URL %q has no scheme or host", u.String()))
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

// doRequest performs a GET request and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	requestURL, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, newError(KindInvalidURL, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp == nil || resp.Body == nil {
		return nil, newError(KindInvalidResponse, nil)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("url", requestURL).
		Int("status", resp.StatusCode).
		Msg("Rick and Morty API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Body is irrelevant for non-2xx; drain it for connection reuse
		io.Copy(io.Discard, resp.Body)
		return nil, ServerError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindInvalidResponse, err)
	}

	return body, nil
}

// decode unmarshals body into v, mapping failures to a decoding error
func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return newError(KindDecoding, err)
	}
	return nil
}

// TestConnection checks that the API root answers with a 2xx response
func (c *Client) TestConnection(ctx context.Context) error {
	body, err := c.doRequest(ctx, "", nil)
	if err != nil {
		return err
	}

	var endpoints map[string]string
	if err := decode(body, &endpoints); err != nil {
		return err
	}

	c.logger.Debug().Int("endpoints", len(endpoints)).Msg("Connected to Rick and Morty API")
	return nil
}

// FetchCharacterPage retrieves a page of characters. A page of 0 omits the
// page parameter so the server returns its first page.
func (c *Client) FetchCharacterPage(ctx context.Context, page int) (*CharacterPage, error) {
	if page < 0 {
		return nil, newError(KindInvalidURL, fmt.Errorf("page must be positive, got %d", page))
	}

	var params url.Values
	if page > 0 {
		params = url.Values{}
		params.Set("page", strconv.Itoa(page))
	}

	body, err := c.doRequest(ctx, "/character", params)
	if err != nil {
		return nil, err
	}

	var response CharacterPage
	if err := decode(body, &response); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("page", page).
		Int("count", len(response.Results)).
		Int("total", response.Info.Count).
		Bool("has_next", response.Info.HasNext()).
		Msg("Retrieved characters")

	return &response, nil
}

// FetchCharacter retrieves a single character by ID
func (c *Client) FetchCharacter(ctx context.Context, id int) (*Character, error) {
	if id <= 0 {
		return nil, newError(KindInvalidURL, fmt.Errorf("character id must be positive, got %d", id))
	}

	body, err := c.doRequest(ctx, "/character/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	var character Character
	if err := decode(body, &character); err != nil {
		return nil, err
	}

	return &character, nil
}

// FetchEpisodes retrieves the episodes with the given IDs.
// The API returns a bare object for one ID and an array for several, so the
// number of requested IDs decides how the body is decoded.
func (c *Client) FetchEpisodes(ctx context.Context, ids []int) ([]Episode, error) {
	if len(ids) == 0 {
		return nil, newError(KindInvalidURL, fmt.Errorf("no episode ids requested"))
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	body, err := c.doRequest(ctx, "/episode/"+strings.Join(parts, ","), nil)
	if err != nil {
		return nil, err
	}

	if len(ids) == 1 {
		var episode Episode
		if err := decode(body, &episode); err != nil {
			return nil, err
		}
		return []Episode{episode}, nil
	}

	var episodes []Episode
	if err := decode(body, &episodes); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("requested", len(ids)).
		Int("count", len(episodes)).
		Msg("Retrieved episodes")

	return episodes, nil
}
