package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"tqc/internal/logging"
)

// Client posts JUnit reports and their attachments to a test plan
type Client struct {
	host   string
	token  string
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a new Client. token is sent as a bearer token.
func NewClient(host, token string, logger *zap.Logger) *Client {
	return &Client{
		host:   strings.TrimRight(host, "/"),
		token:  token,
		http:   &http.Client{Timeout: 10 * time.Minute},
		logger: logging.OrNop(logger),
	}
}

// Upload streams the form to {host}/plan/{id}/junit_xml and returns the decoded JSON response
func (c *Client) Upload(ctx context.Context, req Request) (any, error) {
	if req.PlanID <= 0 {
		return nil, ErrPlanRequired
	}

	parts, err := BuildForm(req)
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeParts(mw, parts))
	}()

	url := fmt.Sprintf("%s/plan/%d/junit_xml", c.host, req.PlanID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("uploading test run", zap.String("url", url), zap.Int("parts", len(parts)))
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upload failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out any
	if len(body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return out, nil
}

func writeParts(mw *multipart.Writer, parts []Part) error {
	for _, p := range parts {
		if p.File == "" {
			if err := mw.WriteField(p.Field, p.Value); err != nil {
				return err
			}
			continue
		}
		if err := writeFile(mw, p); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writeFile(mw *multipart.Writer, p Part) error {
	f, err := os.Open(p.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", p.File, err)
	}
	defer f.Close()

	w, err := mw.CreateFormFile(p.Field, filepath.Base(p.File))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
