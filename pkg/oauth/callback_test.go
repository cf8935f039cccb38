// Package oauth callback tests document the loopback authorization flow.
//
// Test requirements (this file serves as documentation):
// - The callback server extracts the authorization code from the redirect
// - A mismatched state is rejected (CSRF protection)
// - A denied consent surfaces the provider's error
// - Waiting gives up on timeout and on context cancellation
package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type waitResult struct {
	code string
	err  error
}

func startCallbackServer(t *testing.T, ctx context.Context, state string, timeout time.Duration) (*CallbackServer, string, <-chan waitResult) {
	t.Helper()

	server := NewCallbackServer(0)
	require.NoError(t, server.Listen())
	addr := server.Addr()

	done := make(chan waitResult, 1)
	go func() {
		code, err := server.WaitForCallback(ctx, state, timeout)
		done <- waitResult{code: code, err: err}
	}()
	return server, addr, done
}

func await(t *testing.T, done <-chan waitResult) waitResult {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for callback result")
		return waitResult{}
	}
}

func TestCallbackServer_ReceivesCode(t *testing.T) {
	_, addr, done := startCallbackServer(t, context.Background(), "state-123", 5*time.Second)

	resp, err := http.Get(fmt.Sprintf("http://%s/callback?code=auth-code-xyz&state=state-123", addr))
	require.NoError(t, err)
	resp.Body.Close()

	res := await(t, done)
	require.NoError(t, res.err)
	assert.Equal(t, "auth-code-xyz", res.code)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCallbackServer_RedirectURLUsesBoundPort(t *testing.T) {
	server := NewCallbackServer(0)
	assert.Empty(t, server.RedirectURL())

	require.NoError(t, server.Listen())
	t.Cleanup(func() { _ = server.Close() })

	redirect := server.RedirectURL()
	assert.True(t, strings.HasPrefix(redirect, "http://localhost:"))
	assert.True(t, strings.HasSuffix(redirect, "/callback"))
	assert.NotEqual(t, "http://localhost:0/callback", redirect)
}

func TestCallbackServer_RejectsInvalidState(t *testing.T) {
	_, addr, done := startCallbackServer(t, context.Background(), "correct-state", 5*time.Second)

	resp, err := http.Get(fmt.Sprintf("http://%s/callback?code=x&state=forged", addr))
	require.NoError(t, err)
	resp.Body.Close()

	res := await(t, done)
	assert.ErrorIs(t, res.err, ErrStateMismatch)
	assert.Empty(t, res.code)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCallbackServer_ReportsDeniedConsent(t *testing.T) {
	_, addr, done := startCallbackServer(t, context.Background(), "s", 5*time.Second)

	resp, err := http.Get(fmt.Sprintf("http://%s/callback?error=access_denied&state=s", addr))
	require.NoError(t, err)
	resp.Body.Close()

	res := await(t, done)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "access_denied")
}

func TestCallbackServer_TimesOut(t *testing.T) {
	_, _, done := startCallbackServer(t, context.Background(), "s", 50*time.Millisecond)

	res := await(t, done)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "timed out")
}

func TestCallbackServer_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, _, done := startCallbackServer(t, ctx, "s", 5*time.Second)

	cancel()

	res := await(t, done)
	assert.ErrorIs(t, res.err, context.Canceled)
}

func TestCallbackServer_CancelledBeforeServing(t *testing.T) {
	server := NewCallbackServer(0)
	require.NoError(t, server.Listen())
	addr := server.Addr()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := server.WaitForCallback(ctx, "state", time.Second)
	assert.ErrorIs(t, err, context.Canceled)

	// Give a late Serve goroutine time to run against the released listener.
	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, server.Addr())
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err == nil {
		conn.Close()
	}
	assert.Error(t, err, "the port should be released after the wait returns")
}
