// Package client is a typed HTTP client for the NextHire API plus the job
// list state a front end keeps between requests.
package client

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

	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/pkg/model"
)

// APIError is a non-success response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("nexthire api error: status %d", e.Status)
	}
	return e.Message
}

type Client struct {
	base  string
	token string
	http  *http.Client
}

// NewClient returns a client for baseURL, e.g. http://localhost:8000/api/v1.
func NewClient(baseURL, token string) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Token() string { return c.token }

func (c *Client) SetToken(token string) { c.token = token }

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do sends body as JSON and decodes the response envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	r, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return "", err
	}
	r.Header.Set("Accept", "application/json")
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		r.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(r)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		if resp.StatusCode >= 400 {
			return "", &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(bodyBytes))}
		}
		return "", fmt.Errorf("decode error: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return "", &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return "", fmt.Errorf("decode error: %w", err)
		}
	}
	return env.Message, nil
}

func (c *Client) Register(ctx context.Context, req model.RegisterReq) error {
	_, err := c.do(ctx, http.MethodPost, "/user/register", req, nil)
	return err
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string, role model.UserRole) (*model.UserRes, error) {
	var out struct {
		User  model.UserRes `json:"user"`
		Token string        `json:"token"`
	}
	req := model.LoginReq{Email: email, Password: password, Role: role}
	if _, err := c.do(ctx, http.MethodPost, "/user/login", req, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodGet, "/user/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) Me(ctx context.Context) (*model.UserRes, error) {
	var out struct {
		User model.UserRes `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/user/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

type jobsRes struct {
	Jobs []model.Job `json:"jobs"`
}

type jobRes struct {
	Job model.Job `json:"job"`
}

// Jobs searches job titles and descriptions; an empty keyword lists all.
func (c *Client) Jobs(ctx context.Context, keyword string) ([]model.Job, error) {
	path := "/job/get"
	if keyword != "" {
		path += "?keyword=" + url.QueryEscape(keyword)
	}
	var out jobsRes
	if _, err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *Client) Job(ctx context.Context, jobID uuid.UUID) (*model.Job, error) {
	var out jobRes
	if _, err := c.do(ctx, http.MethodGet, "/job/get/"+jobID.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

func (c *Client) AdminJobs(ctx context.Context) ([]model.Job, error) {
	var out jobsRes
	if _, err := c.do(ctx, http.MethodGet, "/job/getadminjobs", nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *Client) PostJob(ctx context.Context, req model.JobReq) (*model.Job, error) {
	var out jobRes
	if _, err := c.do(ctx, http.MethodPost, "/job/post", req, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

func (c *Client) UpdateJob(ctx context.Context, jobID uuid.UUID, req model.JobReq) (*model.Job, error) {
	var out jobRes
	if _, err := c.do(ctx, http.MethodPut, "/job/update/"+jobID.String(), req, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

// Apply submits an application. It satisfies quiz.Applier.
func (c *Client) Apply(ctx context.Context, jobID uuid.UUID, quizPassed bool) error {
	req := model.ApplyReq{QuizPassed: &quizPassed}
	_, err := c.do(ctx, http.MethodPost, "/application/apply/"+jobID.String(), req, nil)
	return err
}

func (c *Client) AppliedJobs(ctx context.Context) ([]model.Application, error) {
	var out struct {
		Applications []model.Application `json:"applications"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/application/get", nil, &out); err != nil {
		return nil, err
	}
	return out.Applications, nil
}

func (c *Client) Applicants(ctx context.Context, jobID uuid.UUID) (*model.Job, error) {
	var out jobRes
	if _, err := c.do(ctx, http.MethodGet, "/application/"+jobID.String()+"/applicants", nil, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

func (c *Client) UpdateStatus(ctx context.Context, appID uuid.UUID, status string) error {
	req := model.UpdateStatusReq{Status: status}
	_, err := c.do(ctx, http.MethodPost, "/application/status/"+appID.String()+"/update", req, nil)
	return err
}

func (c *Client) RegisterCompany(ctx context.Context, name string) (*model.Company, error) {
	var out struct {
		Company model.Company `json:"company"`
	}
	req := model.RegisterCompanyReq{CompanyName: name}
	if _, err := c.do(ctx, http.MethodPost, "/company/register", req, &out); err != nil {
		return nil, err
	}
	return &out.Company, nil
}

func (c *Client) Companies(ctx context.Context) ([]model.Company, error) {
	var out struct {
		Companies []model.Company `json:"companies"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/company/get", nil, &out); err != nil {
		return nil, err
	}
	return out.Companies, nil
}
