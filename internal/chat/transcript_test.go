package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type senderFunc func(ctx context.Context, msg string) (string, error)

func (f senderFunc) Send(ctx context.Context, msg string) (string, error) { return f(ctx, msg) }

func TestTranscript_Greeting(t *testing.T) {
	tr := NewTranscript("")
	want := []Message{{Role: RoleAssistant, Content: Greeting}}
	if diff := cmp.Diff(want, tr.Messages()); diff != "" {
		t.Errorf("initial transcript (-want +got):\n%s", diff)
	}
	if tr.Loading() {
		t.Error("new transcript should not be loading")
	}
}

func TestTranscript_BeginRejects(t *testing.T) {
	tr := NewTranscript("hi")
	if _, ok := tr.Begin("   "); ok {
		t.Error("blank input should be rejected")
	}
	if _, ok := tr.Begin(" first "); !ok {
		t.Fatal("first message should be accepted")
	}
	if _, ok := tr.Begin("second"); ok {
		t.Error("second message while loading should be rejected")
	}
	want := []Message{
		{Role: RoleAssistant, Content: "hi"},
		{Role: RoleUser, Content: "first"},
	}
	if diff := cmp.Diff(want, tr.Messages()); diff != "" {
		t.Errorf("transcript (-want +got):\n%s", diff)
	}
}

func TestTranscript_Exchange(t *testing.T) {
	tr := NewTranscript("hi")
	s := senderFunc(func(_ context.Context, msg string) (string, error) {
		return `**Go**\n\n\n\nand Python`, nil
	})

	got, ok := tr.Exchange(context.Background(), s, "skills?")
	if !ok {
		t.Fatal("exchange rejected")
	}
	if got.Content != "Go\n\nand Python" {
		t.Errorf("reply not cleaned: %q", got.Content)
	}
	if tr.Loading() {
		t.Error("loading should clear after completion")
	}
}

func TestTranscript_FallbackOnNetworkFailure(t *testing.T) {
	tr := NewTranscript("")
	s := senderFunc(func(context.Context, string) (string, error) {
		return "", errors.Join(ErrUnreachable, errors.New("dial tcp: connection refused"))
	})

	got, ok := tr.Exchange(context.Background(), s, "What are your skills?")
	if !ok {
		t.Fatal("exchange rejected")
	}
	if got.Content != Fallback || tr.Last().Content != Fallback {
		t.Errorf("expected fallback, got %q", got.Content)
	}
	if tr.Loading() {
		t.Error("input should be re-enabled after a failure")
	}
	if _, ok := tr.Begin("retry"); !ok {
		t.Error("a retry should be accepted after a failure")
	}
}

func TestTranscript_Reset(t *testing.T) {
	tr := NewTranscript("hello")
	tr.Begin("x")
	tr.Reset()
	if len(tr.Messages()) != 1 {
		t.Errorf("reset should leave only the greeting, got %+v", tr.Messages())
	}
	if !tr.Loading() {
		t.Fatal("reset must not clear a request in flight")
	}
	if _, ok := tr.Begin("y"); ok {
		t.Error("a second send must wait for the pending reply")
	}

	tr.Complete("answer to x", nil)
	if tr.Loading() || tr.Last().Content != "answer to x" {
		t.Errorf("pending reply should complete after reset, got %+v", tr.Last())
	}
	if _, ok := tr.Begin("y"); !ok {
		t.Error("sending should work again once the reply arrived")
	}
}
