// Package drive downloads spreadsheets as CSV files for the parser.
//
// Downloaded files belong to the caller, who removes them with Remove once
// the export is done.
package drive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	resty "github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the spreadsheet host.
	DefaultBaseURL = "https://docs.google.com"
	// RequestTimeout bounds a single download.
	RequestTimeout = 45 * time.Second
)

// FetchError reports a download answered with a non-success status.
type FetchError struct {
	Key    string
	Sheet  string
	Status int
}

func (e *FetchError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("downloading spreadsheet %q sheet %q: HTTP %d", e.Key, e.Sheet, e.Status)
	}
	return fmt.Sprintf("downloading spreadsheet %q: HTTP %d", e.Key, e.Status)
}

// IsRateLimited reports whether err is a FetchError caused by throttling.
func IsRateLimited(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == http.StatusTooManyRequests
}

// Client downloads spreadsheet exports.
type Client struct {
	http   *resty.Client
	logger *zap.SugaredLogger
}

// Option configures a Client.
type Option func(c *Client)

// WithBaseURL points the client at another host, mostly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(u)
	}
}

// WithToken sends token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.http.SetAuthToken(token)
		}
	}
}

// WithLogger sets the logger used for download messages.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a Client for the default host.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:   resty.New(),
		logger: zap.NewNop().Sugar(),
	}
	c.http.SetBaseURL(DefaultBaseURL)
	c.http.SetTimeout(RequestTimeout)
	c.http.SetHeader("User-Agent", "adlocalize-go")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient exposes the underlying client, for transport mocking.
func (c *Client) HTTPClient() *http.Client {
	return c.http.GetClient()
}

// DownloadPath returns where Download stores the export of key and sheet.
func DownloadPath(dir, key, sheet string) string {
	name := key
	if sheet != "" {
		name += "-" + sheet
	}
	return filepath.Join(dir, name+".csv")
}

// Download exports sheet of spreadsheet key as CSV into dir and returns the
// file path. An empty sheet exports the first sheet. On error no file is left
// behind.
func (c *Client) Download(ctx context.Context, key, sheet, dir string) (string, error) {
	if key == "" {
		return "", errors.New("spreadsheet key is required")
	}
	path := DownloadPath(dir, key, sheet)
	c.logger.Infof("Downloading spreadsheet %s%s...", key, sheetSuffix(sheet))

	query := url.Values{"format": {"csv"}}
	if sheet != "" {
		query.Set("gid", sheet)
	} else {
		query.Set("id", key)
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("key", key).
		SetQueryParamsFromValues(query).
		SetOutput(path).
		Get("/spreadsheets/d/{key}/export")
	if err != nil {
		_ = Remove(path)
		return "", fmt.Errorf("downloading spreadsheet %q: %w", key, err)
	}
	if !res.IsSuccess() {
		_ = Remove(path)
		return "", &FetchError{Key: key, Sheet: sheet, Status: res.StatusCode()}
	}

	c.logger.Debugf("Saved %s", path)
	return path, nil
}

// DownloadAll downloads every sheet in sheets, or the first sheet when the
// list is empty. On error the files already downloaded are removed.
func (c *Client) DownloadAll(ctx context.Context, key string, sheets []string, dir string) ([]string, error) {
	if len(sheets) == 0 {
		sheets = []string{""}
	}
	var paths []string
	for _, sheet := range sheets {
		path, err := c.Download(ctx, key, sheet, dir)
		if err != nil {
			_ = Remove(paths...)
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Remove deletes downloaded files. Missing files are ignored.
func Remove(paths ...string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func sheetSuffix(sheet string) string {
	if sheet == "" {
		return ""
	}
	return " (sheet " + sheet + ")"
}
