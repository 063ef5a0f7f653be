package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/carsa-legal/cobros/internal/ledger"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Token returns the session token held after a successful Login.
func (c *Client) Token() string {
	return c.token
}

type LoginResult struct {
	Token          string `json:"token"`
	AttorneyFilter string `json:"attorney_filter"`
}

// Login authenticates and binds the returned session token to the client.
func (c *Client) Login(ctx context.Context, username, secret string) (*LoginResult, error) {
	body := map[string]string{"usuario": username, "contrasena": secret}
	var result LoginResult
	if err := c.post(ctx, "/api/v1/login", body, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Logout destroys the server-side session and drops the local token.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	err := c.post(ctx, "/api/v1/logout", map[string]string{}, nil)
	c.token = ""
	return err
}

func (c *Client) SearchClients(ctx context.Context, cedula, nombre string) ([]ledger.ClientMatch, error) {
	params := url.Values{}
	if cedula != "" {
		params.Set("cedula", cedula)
	}
	if nombre != "" {
		params.Set("nombre", nombre)
	}
	var result []ledger.ClientMatch
	if err := c.get(ctx, "/api/v1/clients?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ClientReport(ctx context.Context, cedula string) (*ledger.Report, error) {
	var result ledger.Report
	if err := c.get(ctx, "/api/v1/reports/client/"+url.PathEscape(cedula), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportReport fetches the xlsx rendering of a client's pivot. Returns the
// raw bytes and the server's suggested filename.
func (c *Client) ExportReport(ctx context.Context, cedula string) ([]byte, string, error) {
	path := "/api/v1/reports/client/" + url.PathEscape(cedula) + "/export"
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, "", apiErrorFrom(resp.StatusCode, data)
	}

	filename := "detalle_pagos_" + cedula + ".xlsx"
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			filename = params["filename"]
		}
	}
	return data, filename, nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/ping", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

type apiError struct {
	Error string `json:"error"`
}

func apiErrorFrom(status int, body []byte) error {
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Errorf("server error (%d): %s", status, apiErr.Error)
	}
	return fmt.Errorf("server error (%d): %s", status, string(body))
}

func (c *Client) doRequest(req *http.Request, result any) error {
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiErrorFrom(resp.StatusCode, bodyBytes)
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
