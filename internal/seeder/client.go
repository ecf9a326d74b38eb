package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/internal/domain/types"
)

type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeDuplicate
	outcomeRejected
	outcomeInvalid
	outcomeFailed
)

// client talks to the talentgrid HTTP API.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// submit posts one record to /employees and classifies the response.
func (c *client) submit(ctx context.Context, rec *model.EmployeeRecord) (outcome, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return outcomeFailed, fmt.Errorf("marshal %s: %w", rec.ID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/employees", bytes.NewReader(body))
	if err != nil {
		return outcomeFailed, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return outcomeFailed, fmt.Errorf("post %s: %w", rec.ID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusAccepted:
		return outcomeAccepted, nil
	case http.StatusOK:
		return outcomeDuplicate, nil
	case http.StatusTooManyRequests:
		return outcomeRejected, nil
	case http.StatusBadRequest:
		return outcomeInvalid, nil
	default:
		return outcomeFailed, fmt.Errorf("post %s: unexpected status %d", rec.ID, resp.StatusCode)
	}
}

func (c *client) atRisk(ctx context.Context, cycle string, n int) ([]types.RiskEntry, error) {
	var entries []types.RiskEntry
	err := c.getJSON(ctx, fmt.Sprintf("/at-risk?limit=%d&cycle=%s", n, cycle), &entries)
	return entries, err
}

func (c *client) summary(ctx context.Context, organization, cycle string) (model.AggregateSummary, error) {
	var s model.AggregateSummary
	err := c.getJSON(ctx, fmt.Sprintf("/summary?organization=%s&cycle=%s", organization, cycle), &s)
	return s, err
}

func (c *client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
