package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

var ErrStateMismatch = errors.New("state mismatch")

// CallbackServer receives the authorization code on the loopback redirect.
type CallbackServer struct {
	port     int
	listener net.Listener
}

func NewCallbackServer(port int) *CallbackServer {
	return &CallbackServer{port: port}
}

// Listen binds the port. Port 0 picks a free one, see Addr.
func (s *CallbackServer) Listen() error {
	if s.listener != nil {
		return nil
	}
	l, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}
	s.listener = l
	return nil
}

func (s *CallbackServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// RedirectURL is the loopback redirect for the bound port. It is empty
// before Listen.
func (s *CallbackServer) RedirectURL() string {
	if s.listener == nil {
		return ""
	}
	addr, ok := s.listener.Addr().(*net.TCPAddr)
	if !ok {
		return ""
	}
	return fmt.Sprintf("http://localhost:%d/callback", addr.Port)
}

// Close releases a port bound by Listen that was never served.
func (s *CallbackServer) Close() error {
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	s.listener = nil
	return err
}

type callbackResult struct {
	code string
	err  error
}

// WaitForCallback serves /callback until one request arrives, the timeout
// expires or ctx is done. A request whose state differs from expectedState
// is rejected with ErrStateMismatch.
func (s *CallbackServer) WaitForCallback(ctx context.Context, expectedState string, timeout time.Duration) (string, error) {
	if err := s.Listen(); err != nil {
		return "", err
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var res callbackResult
		switch {
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s", q.Get("error"))
		case q.Get("state") != expectedState:
			res.err = ErrStateMismatch
		case q.Get("code") == "":
			res.err = errors.New("callback carried no authorization code")
		default:
			res.code = q.Get("code")
		}

		if res.err != nil {
			http.Error(w, res.err.Error(), http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Authorization complete. You can close this tab.")
		}

		select {
		case results <- res:
		default:
		}
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	// Serve may start after this function returns, so it gets its own copy.
	l := s.listener
	s.listener = nil
	go func() { _ = server.Serve(l) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		_ = l.Close()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-results:
		return res.code, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", fmt.Errorf("timed out after %s waiting for authorization", timeout)
	}
}
