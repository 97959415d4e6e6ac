package notification

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/notify"
)

func setup(t *testing.T) (*gin.Engine, *notify.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := notify.NewHub(time.Minute)
	t.Cleanup(hub.Close)

	r := gin.New()
	api := r.Group("/api/v1")
	NewModule(NewHandler(hub)).RegisterRoutes(api, api)
	return r, hub
}

func TestActive(t *testing.T) {
	r, hub := setup(t)
	hub.Success("product created")
	hub.Error("order update failed")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data []notify.Notification `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(body.Data))
	}
	if body.Data[0].Message != "product created" {
		t.Errorf("expected oldest first, got %q", body.Data[0].Message)
	}
}

func TestDismiss(t *testing.T) {
	r, hub := setup(t)
	id := hub.Info("hello")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/notifications/"+id, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := hub.Active(); len(got) != 0 {
		t.Errorf("notification still active after dismiss: %v", got)
	}

	// Dismissing again is a no-op.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req.Clone(req.Context()))
	if w.Code != http.StatusOK {
		t.Errorf("repeat dismiss: expected 200, got %d", w.Code)
	}
}

func TestStream(t *testing.T) {
	_, hub := setup(t)
	h := NewHandler(hub)

	srv := httptest.NewServer(func() http.Handler {
		r := gin.New()
		r.GET("/stream", h.Stream)
		return r
	}())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stream")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type %q", ct)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		hub.Warning("stock low")
	}()

	reader := bufio.NewReader(resp.Body)
	var event, data string
	deadline := time.After(2 * time.Second)
	lines := make(chan string)
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				close(lines)
				return
			}
			lines <- strings.TrimRight(line, "\r\n")
		}
	}()
	for data == "" {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatal("stream closed before event arrived")
			}
			if strings.HasPrefix(line, "event:") {
				event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			}
			if strings.HasPrefix(line, "data:") {
				data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
		case <-deadline:
			t.Fatal("timed out waiting for SSE event")
		}
	}

	if event != "added" {
		t.Errorf("expected added event, got %q", event)
	}
	if !strings.Contains(data, "stock low") {
		t.Errorf("payload missing message: %s", data)
	}
}
