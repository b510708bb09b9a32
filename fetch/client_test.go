package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"xmd/config"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.FetchConfig{
		APIBase:         srv.URL,
		UserAgent:       "xmd-test",
		TimeoutSec:      5,
		ImageTimeoutSec: 5,
	}
	return NewClient(cfg, nil, nil, zap.NewNop()), srv
}

func TestClient_Status(t *testing.T) {
	var gotPath, gotUA string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"code": 200, "message": "OK", "tweet": {"id": "123", "text": "hi", "author": {"screen_name": "someone"}}}`))
	}))

	tweet, err := c.Status(context.Background(), "someone", "123")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if gotPath != "/someone/status/123" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotUA != "xmd-test" {
		t.Errorf("user agent = %q", gotUA)
	}
	if tweet.ID != "123" || tweet.Text != "hi" {
		t.Errorf("unexpected tweet: %#v", tweet)
	}
}

func TestClient_Status_DefaultScreenName(t *testing.T) {
	var gotPath string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"code": 200, "tweet": {"id": "1"}}`))
	}))

	if _, err := c.Status(context.Background(), "", "1"); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/i/status/1" {
		t.Errorf("request path = %q, want /i/status/1", gotPath)
	}
}

func TestClient_Status_NotFound(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.Status(context.Background(), "someone", "404")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_Status_APIError(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 500, "message": "API_FAIL"}`))
	}))

	_, err := c.Status(context.Background(), "someone", "1")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, should not be ErrNotFound", err)
	}
}

func TestClient_Status_EnvelopeNotFound(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 404, "message": "NOT_FOUND"}`))
	}))

	_, err := c.Status(context.Background(), "someone", "1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_DownloadImage(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3}
	c, srv := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))

	data, err := c.DownloadImage(context.Background(), srv.URL+"/media/a.jpg")
	if err != nil {
		t.Fatalf("DownloadImage() error = %v", err)
	}
	if string(data) != string(payload) {
		t.Error("payload mismatch")
	}
}

func TestClient_DownloadImage_HTTPError(t *testing.T) {
	c, srv := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	if _, err := c.DownloadImage(context.Background(), srv.URL+"/media/a.jpg"); err == nil {
		t.Fatal("expected error")
	}
}
