package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   2 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestSend(t *testing.T) {
	var got Request
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected a request id")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": "**Go** and Python"})
	})

	c := NewClient(srv.URL, time.Second, WithHTTPClient(testHTTPClient()))
	reply, err := c.Send(context.Background(), "What are your skills?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Message != "What are your skills?" {
		t.Errorf("server saw %q", got.Message)
	}
	if reply != "**Go** and Python" {
		t.Errorf("Send should return the raw reply, got %q", reply)
	}
}

func TestSend_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: ErrUnreachable,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>sleeping</html>"))
			},
			want: ErrMalformedReply,
		},
		{
			name: "missing reply",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"detail":"nope"}`))
			},
			want: ErrMalformedReply,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.handler)
			c := NewClient(srv.URL, time.Second, WithHTTPClient(testHTTPClient()))
			_, err := c.Send(context.Background(), "hi")
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, WithHTTPClient(testHTTPClient()))
	_, err := c.Send(context.Background(), "hi")
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("expected ErrUnreachable, got %v", err)
	}
}

func TestSend_EmptyReplyIsValid(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reply":""}`))
	})
	c := NewClient(srv.URL, time.Second, WithHTTPClient(testHTTPClient()))
	reply, err := c.Send(context.Background(), "hi")
	if err != nil || reply != "" {
		t.Errorf("expected empty reply without error, got %q, %v", reply, err)
	}
}

func TestAsk(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Message == "fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": "**Go**\\nand more"})
	})
	c := NewClient(srv.URL, time.Second, WithHTTPClient(testHTTPClient()))

	reply, err := Ask(context.Background(), c, "  skills?  ")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if reply != "Go\nand more" {
		t.Errorf("expected cleaned reply, got %q", reply)
	}

	if _, err := Ask(context.Background(), c, "fail"); !errors.Is(err, ErrUnreachable) {
		t.Errorf("expected ErrUnreachable, got %v", err)
	}
	if _, err := Ask(context.Background(), c, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
}
