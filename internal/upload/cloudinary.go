package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/freshmart/admin-console/internal/domain"
)

// CloudinaryBackend stores images through Cloudinary's unsigned upload
// endpoint. Unsigned presets cannot delete by public id; Cloudinary issues
// a short-lived delete token with each upload instead, which the backend
// remembers for rollback of images uploaded by this process.
type CloudinaryBackend struct {
	cloudName string
	preset    string
	client    *http.Client

	mu     sync.Mutex
	tokens map[string]string // public id -> delete token
}

type cloudinaryUploadResponse struct {
	SecureURL   string `json:"secure_url"`
	PublicID    string `json:"public_id"`
	DeleteToken string `json:"delete_token"`
}

// NewCloudinaryBackend creates a backend for the given cloud and unsigned
// upload preset.
func NewCloudinaryBackend(cloudName, preset string) *CloudinaryBackend {
	return &CloudinaryBackend{
		cloudName: cloudName,
		preset:    preset,
		client:    &http.Client{Timeout: 60 * time.Second},
		tokens:    make(map[string]string),
	}
}

func (b *CloudinaryBackend) endpoint(action string) string {
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/%s", b.cloudName, action)
}

// Upload sends the image as an unsigned multipart upload.
func (b *CloudinaryBackend) Upload(ctx context.Context, filename string, payload io.Reader, size int64) (*Asset, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("upload_preset", b.preset); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to build upload request", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to build upload request", err)
	}
	if _, err := io.Copy(part, payload); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to read image payload", err)
	}
	if err := w.Close(); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to build upload request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint("upload"), &body)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to build upload request", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeUnreachable, "image store unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.NewAppError(domain.CodeUpstream,
			fmt.Sprintf("image store rejected upload: %s", firstLine(string(msg))), nil)
	}

	var out cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "invalid response from image store", err)
	}
	if out.SecureURL == "" || out.PublicID == "" {
		return nil, domain.NewAppError(domain.CodeUpstream, "incomplete response from image store", nil)
	}

	if out.DeleteToken != "" {
		b.mu.Lock()
		b.tokens[out.PublicID] = out.DeleteToken
		b.mu.Unlock()
	}

	return &Asset{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// Delete removes an asset uploaded by this process using its delete token.
// Assets without a known token (uploaded by an earlier run, or presets
// that do not return tokens) are left in place; orphan cleanup is a remote
// concern there.
func (b *CloudinaryBackend) Delete(ctx context.Context, asset Asset) error {
	b.mu.Lock()
	token, ok := b.tokens[asset.PublicID]
	delete(b.tokens, asset.PublicID)
	b.mu.Unlock()
	if !ok {
		return nil
	}

	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint("delete_by_token"),
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to build delete request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.client.Do(req)
	if err != nil {
		return domain.NewAppError(domain.CodeUnreachable, "image store unreachable", err)
	}
	defer resp.Body.Close()

	// An expired token or already-deleted asset is not a failure worth
	// surfacing to the operator.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.NewAppError(domain.CodeUpstream,
			fmt.Sprintf("image store rejected delete: %s", firstLine(string(msg))), nil)
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
