package mailer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/alumni/internal/core"
)

type staticSource struct {
	cfg core.EmailConfig
	err error
}

func (s staticSource) EmailConfig(context.Context) (core.EmailConfig, error) {
	return s.cfg, s.err
}

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, _ core.EmailConfig, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

var testConfig = core.EmailConfig{
	SMTPServer:     "smtp.example.com",
	SMTPPort:       587,
	SenderEmail:    "alumni@example.com",
	SenderPassword: "secret",
}

func TestNotifier_Send(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(staticSource{cfg: testConfig}, sender)

	if err := n.Send(context.Background(), "ada@example.com", "Hi", "Body"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	want := []Message{{To: "ada@example.com", Subject: "Hi", Body: "Body"}}
	if diff := cmp.Diff(want, sender.sent); diff != "" {
		t.Errorf("sent messages mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifier_NotifyWithoutConfigLogs(t *testing.T) {
	logs := captureLogs(t)
	sender := &recordingSender{}
	n := NewNotifier(staticSource{err: core.ErrNoEmailConfig}, sender)

	n.Notify(context.Background(), "ada@example.com", "Hi", "Body")

	if len(sender.sent) != 0 {
		t.Errorf("sent %d messages without config", len(sender.sent))
	}
	if !strings.Contains(logs.String(), "email not sent") {
		t.Errorf("expected failure log, got %q", logs.String())
	}
}

func TestNotifier_NotifySwallowsSendError(t *testing.T) {
	logs := captureLogs(t)
	n := NewNotifier(staticSource{cfg: testConfig}, &recordingSender{err: errors.New("connection refused")})

	// Must not panic or block; the error is only logged.
	n.Notify(context.Background(), "ada@example.com", "Hi", "Body")

	if !strings.Contains(logs.String(), "connection refused") {
		t.Errorf("expected send error in log, got %q", logs.String())
	}
}

func TestBuildMessage(t *testing.T) {
	m, err := buildMessage(testConfig, Message{To: "ada@example.com", Subject: "Welcome", Body: "Hello"})
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}
	got, err := m.GetRecipients()
	if err != nil {
		t.Fatalf("GetRecipients() error = %v", err)
	}
	if diff := cmp.Diff([]string{"ada@example.com"}, got); diff != "" {
		t.Errorf("recipients mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	if _, err := buildMessage(testConfig, Message{To: "not an address"}); err == nil {
		t.Error("buildMessage() expected error for invalid recipient")
	}
}
