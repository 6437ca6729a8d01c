// =================================================================================
//
//			fox-audio - https://www.foxhollow.cc/projects/fox-audio/
//
//		 Fox Audio is a simple CLI utility for recording and playback of
//	  multitrack audio straight to disk by utilizing the JACK audio server
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fox-recorder/model"
)

const (
	DefaultBaseURL = "https://freesound.org/apiv2"

	searchFields = "id,name,duration,filesize,samplerate,license,download,previews"
	pageSize     = 100
)

var (
	ErrNotAuthorized = errors.New("not authorized: run `fox library login` first")
	ErrCancelled     = errors.New("download cancelled")
)

// SortMethod orders text search results.
type SortMethod int

const (
	SortNone SortMethod = iota
	SortDurationDescending
	SortDurationAscending
	SortCreatedDescending
	SortCreatedAscending
	SortDownloadsDescending
	SortDownloadsAscending
	SortRatingDescending
	SortRatingAscending
)

var sortNames = []string{
	SortNone:                "",
	SortDurationDescending:  "duration_desc",
	SortDurationAscending:   "duration_asc",
	SortCreatedDescending:   "created_desc",
	SortCreatedAscending:    "created_asc",
	SortDownloadsDescending: "downloads_desc",
	SortDownloadsAscending:  "downloads_asc",
	SortRatingDescending:    "rating_desc",
	SortRatingAscending:     "rating_asc",
}

// String is the value the service expects in the sort parameter.
func (s SortMethod) String() string {
	if s < 0 || int(s) >= len(sortNames) {
		return ""
	}

	return sortNames[s]
}

func ParseSortMethod(name string) (SortMethod, error) {
	for i, candidate := range sortNames {
		if candidate == name {
			return SortMethod(i), nil
		}
	}

	return SortNone, fmt.Errorf("unknown sort method %q, valid: %s", name, strings.Join(sortNames[1:], ", "))
}

type Sound struct {
	ID         int               `json:"id"`
	Name       string            `json:"name"`
	Duration   float64           `json:"duration"`
	Filesize   int64             `json:"filesize"`
	SampleRate float64           `json:"samplerate"`
	License    string            `json:"license"`
	Download   string            `json:"download"`
	Previews   map[string]string `json:"previews,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
}

type SearchResult struct {
	Count    int     `json:"count"`
	Next     string  `json:"next"`
	Previous string  `json:"previous"`
	Results  []Sound `json:"results"`
}

// Client talks to a Freesound style sound library. Anonymous requests carry
// the api token; downloads need an OAuth access token.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	apiToken     string
	accessToken  string
	client       *http.Client
	downloads    *http.Client
}

func NewClient(options *model.LibraryOptions, accessToken string) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		clientID:     options.ClientID,
		clientSecret: options.ClientSecret,
		apiToken:     options.ApiToken,
		accessToken:  accessToken,
		client:       &http.Client{Timeout: 30 * time.Second},
		downloads:    &http.Client{},
	}
}

func (c *Client) AccessToken() string {
	return c.accessToken
}

func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// SearchText runs a text query. Pages start at 1.
func (c *Client) SearchText(ctx context.Context, query, filter string, sort SortMethod, page int) (*SearchResult, error) {
	params := url.Values{}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	params.Set("query", `"`+query+`"`)
	if filter != "" {
		params.Set("filter", filter)
	}
	if sort != SortNone {
		params.Set("sort", sort.String())
	}
	params.Set("fields", searchFields)
	params.Set("page_size", strconv.Itoa(pageSize))

	var result SearchResult
	if err := c.get(ctx, "/search/text/", params, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) SearchSimilar(ctx context.Context, id int) (*SearchResult, error) {
	params := url.Values{}
	params.Set("fields", searchFields)
	params.Set("num_results", strconv.Itoa(pageSize))

	var result SearchResult
	if err := c.get(ctx, "/sounds/"+strconv.Itoa(id)+"/similar/", params, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Sound fetches the full record of one sound, tags included.
func (c *Client) Sound(ctx context.Context, id int) (*Sound, error) {
	var sound Sound
	if err := c.get(ctx, "/sounds/"+strconv.Itoa(id)+"/", url.Values{}, &sound); err != nil {
		return nil, err
	}

	return &sound, nil
}

// AuthorizeURL is the page the user opens to grant access. It shows the
// authorization code to paste into ExchangeCode.
func (c *Client) AuthorizeURL() string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("response_type", "code")
	params.Set("state", "hello")

	return c.baseURL + "/oauth2/logout_and_authorize/?" + params.Encode()
}

// ExchangeCode trades an authorization code for an access token and keeps
// it on the client.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrNotAuthorized
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)

	path := "/oauth2/access_token/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("POST %s: %d %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil || token.AccessToken == "" {
		return "", fmt.Errorf("%w: no access token in response", ErrNotAuthorized)
	}

	c.accessToken = token.AccessToken

	return token.AccessToken, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiToken != "" {
		params.Set("token", c.apiToken)
	}

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("GET %s: %w", path, ErrNotAuthorized)
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// open starts an authorized download of a file the service linked to.
func (c *Client) open(ctx context.Context, rawURL string) (*http.Response, error) {
	if c.accessToken == "" {
		return nil, ErrNotAuthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	c.setAuth(req)

	resp, err := c.downloads.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w", req.URL.Path, ErrNotAuthorized)
	}
	if resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %d %s", req.URL.Path, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return resp, nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
}
