package bunny

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StorageClient handles Bunny Storage (CDN) operations for lesson resources.
type StorageClient struct {
	zoneName   string
	password   string
	baseURL    string
	hostname   string
	httpClient *http.Client
}

// NewStorageClient creates a new Bunny Storage client.
func NewStorageClient(zoneName, password, baseURL, hostname string) *StorageClient {
	return &StorageClient{
		zoneName: zoneName,
		password: password,
		baseURL:  baseURL,
		hostname: hostname,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// UploadStream uploads a file from an io.Reader to the storage zone and
// returns the public CDN URL.
func (c *StorageClient) UploadStream(ctx context.Context, remotePath string, reader io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.zoneName, remotePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("AccessKey", c.password)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bunny storage error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	return c.PublicURL(remotePath), nil
}

// DeleteFile deletes a file from the storage zone.
func (c *StorageClient) DeleteFile(ctx context.Context, remotePath string) error {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.zoneName, remotePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("AccessKey", c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bunny storage error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// PublicURL constructs the public CDN URL for a stored file.
func (c *StorageClient) PublicURL(remotePath string) string {
	return fmt.Sprintf("https://%s/%s", c.hostname, remotePath)
}

// RelativePath extracts the storage path from a full CDN URL. URLs outside
// the configured CDN host are returned unchanged.
func (c *StorageClient) RelativePath(cdnURL string) string {
	prefix := fmt.Sprintf("https://%s/", c.hostname)
	if strings.HasPrefix(cdnURL, prefix) {
		return strings.TrimPrefix(cdnURL, prefix)
	}
	return cdnURL
}
