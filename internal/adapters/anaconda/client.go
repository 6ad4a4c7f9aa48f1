// Package anaconda provides the remote package repository adapter.
package anaconda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Repository = (*Client)(nil)

// DefaultBaseURL is the public package index API.
const DefaultBaseURL = "https://api.anaconda.org"

// Client implements ports.Repository against the package index HTTP API,
// delegating uploads to the uploader CLI.
type Client struct {
	baseURL    string
	httpClient *http.Client
	uploader   string
	logger     ports.Logger
}

// NewClient creates a new repository client. Empty arguments select the
// public API endpoint and the default uploader executable.
func NewClient(baseURL, uploader string, logger ports.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if uploader == "" {
		uploader = "anaconda"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		uploader:   uploader,
		logger:     logger,
	}
}

// Find queries the index for a published distribution under the given user.
// A 404 response is reported as domain.ErrDistributionNotFound.
func (c *Client) Find(ctx context.Context, user string, spec domain.DistSpec) (*domain.Distribution, error) {
	endpoint := fmt.Sprintf("%s/dist/%s/%s/%s/%s/%s",
		c.baseURL,
		url.PathEscape(user),
		url.PathEscape(spec.Package),
		url.PathEscape(spec.Version),
		url.PathEscape(spec.Platform),
		url.PathEscape(spec.Basename),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build distribution request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "distribution lookup failed"), "package", spec.Package)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	switch {
	case resp.StatusCode == http.StatusNotFound:
		err := zerr.With(domain.ErrDistributionNotFound, "package", spec.Package)
		err = zerr.With(err, "version", spec.Version)
		return nil, zerr.With(err, "basename", spec.Basename)
	case resp.StatusCode != http.StatusOK:
		err := zerr.With(zerr.New("unexpected distribution lookup status"), "status", resp.StatusCode)
		return nil, zerr.With(err, "package", spec.Package)
	}

	var dist distResponse
	if err := json.NewDecoder(resp.Body).Decode(&dist); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode distribution record"), "package", spec.Package)
	}
	return dist.toDomain(), nil
}

// distResponse mirrors the index API's distribution record.
type distResponse struct {
	FullName   string    `json:"full_name"`
	UploadTime time.Time `json:"upload_time"`
	MD5        string    `json:"md5"`
}

func (d *distResponse) toDomain() *domain.Distribution {
	return &domain.Distribution{
		FullName:   d.FullName,
		UploadedAt: d.UploadTime,
		Checksum:   d.MD5,
	}
}
