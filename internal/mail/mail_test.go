package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(buildMessage("noreply@alumni.test", "a@x.com", "Hello", "<p>hi</p>"))
	assert.True(t, strings.HasPrefix(msg, "From: noreply@alumni.test\r\nTo: a@x.com\r\nSubject: Hello\r\n"))
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>hi</p>"))
}

func TestSendRejectsHeaderInjection(t *testing.T) {
	s := NewSMTPSender(Config{Host: "127.0.0.1", Port: "1", Username: "u"})
	err := s.Send(context.Background(), "a@x.com\r\nBcc: evil@x.com", "hi", "body")
	require.Error(t, err)
}

func TestLogSenderRecordsMessage(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewLogSender(zap.New(core))
	require.NoError(t, s.Send(context.Background(), "a@x.com", "Subject", "body"))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "a@x.com", entries[0].ContextMap()["to"])
	assert.NotContains(t, entries[0].ContextMap(), "body")
}

func TestLogSenderBodyOnlyAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewLogSender(zap.New(core))
	require.NoError(t, s.Send(context.Background(), "a@x.com", "Reset", `<a href="https://x/reset?token=abc">`))

	bodies := logs.FilterFieldKey("body").All()
	require.Len(t, bodies, 1)
	assert.Equal(t, zapcore.DebugLevel, bodies[0].Level)
	assert.Contains(t, bodies[0].ContextMap()["body"], "token=abc")
}
