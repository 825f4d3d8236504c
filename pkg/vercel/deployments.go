package vercel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
)

type Deployment struct {
	Uid   string         `json:"uid"`
	Name  string         `json:"name"`
	Url   string         `json:"url"`
	State string         `json:"state"`
	Meta  DeploymentMeta `json:"meta"`
}

type DeploymentMeta struct {
	Commit          string `json:"commit"`
	GithubCommitSha string `json:"githubCommitSha"`
	GithubCommitRef string `json:"githubCommitRef"`
}

// CommitSha is the commit the deployment was built from. Deployments created
// through the CLI with -m tags only carry githubCommitSha.
func (d Deployment) CommitSha() string {
	if d.Meta.Commit != "" {
		return d.Meta.Commit
	}
	return d.Meta.GithubCommitSha
}

type deploymentsResponse struct {
	Deployments []Deployment `json:"deployments"`
}

type ListOptions struct {
	CommitSha string
	CommitRef string
	Limit     int
}

// APIError is returned for transport failures and non 2xx responses.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deployments api request failed: %v", e.Err)
	}
	return fmt.Sprintf("deployments api returned unexpected status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when the response body cannot be decoded.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("could not decode deployments response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

type Client struct {
	BaseUrl    string
	Token      string
	TeamId     string
	HttpClient *http.Client
}

func NewClient(baseUrl string, token string, teamId string) Client {
	return Client{
		BaseUrl:    baseUrl,
		Token:      token,
		TeamId:     teamId,
		HttpClient: http.DefaultClient,
	}
}

func (c Client) ListDeployments(ctx context.Context, opts ListOptions) ([]Deployment, error) {
	u, err := url.Parse(c.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("not able to parse deployments api url %v: %w", c.BaseUrl, err)
	}
	u.Path = path.Join("/", u.Path, "v4", "now", "deployments")

	query := url.Values{}
	if c.TeamId != "" {
		query.Set("teamId", c.TeamId)
	}
	if opts.CommitSha != "" {
		query.Set("meta-githubCommitSha", opts.CommitSha)
	}
	if opts.CommitRef != "" {
		query.Set("meta-githubCommitRef", opts.CommitRef)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error while creating request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))

	slog.Debug("Listing deployments", "url", u.Path, "query", query.Encode())
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed deploymentsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	return parsed.Deployments, nil
}

func (c Client) httpClient() *http.Client {
	if c.HttpClient == nil {
		return http.DefaultClient
	}
	return c.HttpClient
}
