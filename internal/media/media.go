// Package media uploads files to Cloudinary with an unsigned upload preset
// and returns their public URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// DefaultBaseURL is the Cloudinary upload API root.
const DefaultBaseURL = "https://api.cloudinary.com"

// DefaultTimeout bounds a single upload.
const DefaultTimeout = 60 * time.Second

// Uploader stores a file and returns the URL it is served from.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Error describes a failed upload.
type Error struct {
	Filename string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("upload of %s failed: %s", e.Filename, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client uploads through the Cloudinary SDK. Only the cloud name and an
// unsigned preset are needed; no API secret ever reaches the server.
type Client struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	Timeout      time.Duration
}

// NewClient returns a client for cloudName using preset. An empty baseURL
// uses DefaultBaseURL.
func NewClient(baseURL, cloudName, preset string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:      strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/v1_1"),
		CloudName:    cloudName,
		UploadPreset: preset,
		Timeout:      DefaultTimeout,
	}
}

func (c *Client) uploadAPI() (*uploader.API, error) {
	cld, err := cloudinary.NewFromParams(c.CloudName, "", "")
	if err != nil {
		return nil, err
	}
	cld.Upload.Config.API.UploadPrefix = c.BaseURL
	return &cld.Upload, nil
}

// Upload sends r with the unsigned preset and returns the secure_url of
// the stored file. The resource type is left to Cloudinary so PDFs and
// images share one path.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if c.CloudName == "" || c.UploadPreset == "" {
		return "", &Error{Filename: filename, Message: "uploads are not configured"}
	}

	api, err := c.uploadAPI()
	if err != nil {
		return "", &Error{Filename: filename, Message: "invalid media configuration", Cause: err}
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	result, err := api.UnsignedUpload(ctx, r, c.UploadPreset, uploader.UploadParams{})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return "", &Error{Filename: filename, Message: "upload request failed", Cause: err}
	}
	if result.Error.Message != "" {
		return "", &Error{Filename: filename, Message: result.Error.Message}
	}
	if result.SecureURL == "" {
		return "", &Error{Filename: filename, Message: "response has no secure_url"}
	}
	return result.SecureURL, nil
}
