package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/san-kum/termfolio/internal/storage"
	"github.com/stretchr/testify/require"
)

type countingResponder struct {
	calls atomic.Int32
	reply string
	err   error
}

func (c *countingResponder) Respond(ctx context.Context, message string) (string, error) {
	c.calls.Add(1)
	return c.reply, c.err
}

func newTestServer(t *testing.T, r Responder) (*Server, *storage.Store) {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "database.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewServer(st, r, nil), st
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeReply(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp chatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Reply
}

func TestChatStoresAndCaches(t *testing.T) {
	r := &countingResponder{reply: "Go, Python and React."}
	srv, st := newTestServer(t, r)
	h := srv.Handler()

	rec := postChat(t, h, `{"message":"What are your skills?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Go, Python and React.", decodeReply(t, rec))

	rec = postChat(t, h, `{"message":"What are your skills?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Go, Python and React.", decodeReply(t, rec))
	require.EqualValues(t, 1, r.calls.Load(), "second answer should come from the cache")

	msgs, err := st.Messages(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	require.Equal(t, "assistant", msgs[0].Role)
	require.Equal(t, "user", msgs[3].Role)
}

func TestChatModelFailureIsNotCached(t *testing.T) {
	r := &countingResponder{err: errors.New("quota exceeded")}
	srv, st := newTestServer(t, r)
	h := srv.Handler()

	rec := postChat(t, h, `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, Unavailable, decodeReply(t, rec))

	_, err := st.CachedReply(context.Background(), "hi")
	require.ErrorIs(t, err, storage.ErrNotFound)

	postChat(t, h, `{"message":"hi"}`)
	require.EqualValues(t, 2, r.calls.Load())
}

func TestChatRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t, &countingResponder{reply: "x"})
	h := srv.Handler()

	for _, body := range []string{`{"message":""}`, `{"message":"   "}`, `{}`, `not json`} {
		rec := postChat(t, h, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestMessagesNewestFirst(t *testing.T) {
	srv, st := newTestServer(t, nil)
	ctx := context.Background()
	_, err := st.SaveMessage(ctx, "user", "first")
	require.NoError(t, err)
	_, err = st.SaveMessage(ctx, "assistant", "second")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/messages", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var msgs []storage.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msgs))
	require.Len(t, msgs, 2)
	require.Equal(t, "second", msgs[0].Content)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/messages?limit=1", nil))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msgs))
	require.Len(t, msgs, 1)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/messages?limit=x", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t, &countingResponder{reply: "ok"})
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://example.dev")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://example.dev", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))

	rec = postChat(t, h, `{"message":"hi"}`)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, &countingResponder{reply: "pong"})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Post("http://"+ln.Addr().String()+"/chat", "application/json",
		bytes.NewBufferString(`{"message":"ping"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
