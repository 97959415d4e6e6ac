package upload

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/freshmart/admin-console/internal/domain"
)

func TestStoreAPIBackend_Upload(t *testing.T) {
	var gotStorage, gotFolder, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotStorage = r.FormValue("storage")
		gotFolder = r.FormValue("folder")
		_, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotFile = header.Filename
		json.NewEncoder(w).Encode(map[string]string{
			"imageUrl": "https://img.freshmart.example/products/" + header.Filename,
		})
	}))
	defer srv.Close()

	b := NewStoreAPIBackend(srv.URL, "", "products")
	asset, err := b.Upload(context.Background(), "photo.jpg", strings.NewReader("payload"), 7)
	if err != nil {
		t.Fatal(err)
	}

	if gotStorage != "intern" {
		t.Errorf("expected default storage intern, got %q", gotStorage)
	}
	if gotFolder != "products" || gotFile != "photo.jpg" {
		t.Errorf("unexpected form fields: folder=%q file=%q", gotFolder, gotFile)
	}
	if asset.PublicID != "photo.jpg" || !strings.HasSuffix(asset.URL, "photo.jpg") {
		t.Errorf("unexpected asset: %+v", asset)
	}
}

func TestStoreAPIBackend_Delete(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/delete" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := NewStoreAPIBackend(srv.URL, "intern", "products")
	err := b.Delete(context.Background(), Asset{URL: "x", PublicID: "photo.jpg"})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{"storage": "intern", "folder": "products", "file": "photo.jpg"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("delete payload %s: expected %q, got %q", k, v, got[k])
		}
	}
}

func TestStoreAPIBackend_Errors(t *testing.T) {
	t.Run("error_rejected_upload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}))
		defer srv.Close()

		b := NewStoreAPIBackend(srv.URL, "intern", "products")
		_, err := b.Upload(context.Background(), "photo.jpg", strings.NewReader("x"), 1)
		if !domain.IsUpstream(err) {
			t.Errorf("expected upstream error, got %v", err)
		}
	})

	t.Run("error_unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		b := NewStoreAPIBackend(srv.URL, "intern", "products")
		_, err := b.Upload(context.Background(), "photo.jpg", strings.NewReader("x"), 1)
		if !domain.IsUnreachable(err) {
			t.Errorf("expected unreachable error, got %v", err)
		}
	})

	t.Run("delete_missing_file_is_ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		b := NewStoreAPIBackend(srv.URL, "intern", "products")
		if err := b.Delete(context.Background(), Asset{PublicID: "gone.jpg"}); err != nil {
			t.Errorf("expected nil for already-deleted file, got %v", err)
		}
	})
}
