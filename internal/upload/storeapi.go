package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/freshmart/admin-console/internal/domain"
)

// StoreAPIBackend stores images on the in-house image store. Uploads go to
// POST {base}/upload and return the public URL; deletion addresses the
// file by storage bucket, folder, and filename, so the filename doubles as
// the asset's public id.
type StoreAPIBackend struct {
	baseURL string
	storage string
	folder  string
	client  *http.Client
}

// NewStoreAPIBackend creates a backend rooted at baseURL. Empty storage
// defaults to the shared intern bucket.
func NewStoreAPIBackend(baseURL, storage, folder string) *StoreAPIBackend {
	if storage == "" {
		storage = "intern"
	}
	return &StoreAPIBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		storage: storage,
		folder:  folder,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload sends the image as a multipart form.
func (b *StoreAPIBackend) Upload(ctx context.Context, filename string, payload io.Reader, size int64) (*Asset, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("storage", b.storage); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to build upload request", err)
	}
	if err := w.WriteField("folder", b.folder); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to build upload request", err)
	}
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to build upload request", err)
	}
	if _, err := io.Copy(part, payload); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to read image payload", err)
	}
	if err := w.Close(); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to build upload request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/upload", &body)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to build upload request", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeUnreachable, "image store unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.NewAppError(domain.CodeUpstream,
			fmt.Sprintf("image store rejected upload: %s", firstLine(string(msg))), nil)
	}

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.NewAppError(domain.CodeUpstream, "invalid response from image store", err)
	}
	if out.ImageURL == "" {
		return nil, domain.NewAppError(domain.CodeUpstream, "incomplete response from image store", nil)
	}

	return &Asset{URL: out.ImageURL, PublicID: filename}, nil
}

// Delete removes the file named by the asset's public id.
func (b *StoreAPIBackend) Delete(ctx context.Context, asset Asset) error {
	if asset.PublicID == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"storage": b.storage,
		"folder":  b.folder,
		"file":    asset.PublicID,
	})
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to build delete request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/delete", bytes.NewReader(payload))
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to build delete request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return domain.NewAppError(domain.CodeUnreachable, "image store unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.NewAppError(domain.CodeUpstream,
			fmt.Sprintf("image store rejected delete: %s", firstLine(string(msg))), nil)
	}
	return nil
}
