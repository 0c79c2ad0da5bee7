package server

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/danielr460/itunes-spotify-connector/internal/shared"
	"golang.org/x/oauth2"
)

// CallbackResult carries the outcome of the authorization redirect: a token
// on success, otherwise an error wrapping [shared.ErrAuthFailed].
type CallbackResult struct {
	Token *oauth2.Token
	Err   error
}

// OAuthHandler serves the authorization-code callback for the Spotify login
// flow. A handler accepts exactly one callback; the outcome is delivered on
// the channel returned by [OAuthHandler.Result], which is then closed.
type OAuthHandler struct {
	config  *oauth2.Config
	state   string
	results chan CallbackResult
	handled atomic.Bool
}

// NewOAuthHandler creates a handler that expects the given state token on the
// redirect. The state must be freshly generated per flow; a mismatch fails
// the login.
func NewOAuthHandler(config *oauth2.Config, state string) *OAuthHandler {
	return &OAuthHandler{
		config:  config,
		state:   state,
		results: make(chan CallbackResult, 1),
	}
}

// Routes implements Handler.
func (h *OAuthHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP validates the redirect, exchanges the authorization code for a
// token, and delivers the result. Repeat hits are rejected so a replayed
// redirect cannot swap the session token mid-run.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.handled.CompareAndSwap(false, true) {
		http.Error(w, "Authorization already completed", http.StatusConflict)
		return
	}

	token, err := h.exchange(r)
	if err != nil {
		h.finish(CallbackResult{Err: err})
		http.Error(w, "Authorization failed. Check the terminal for details.", http.StatusBadRequest)
		return
	}

	h.finish(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, successPage)
}

// exchange validates the callback query and trades the code for a token.
func (h *OAuthHandler) exchange(r *http.Request) (*oauth2.Token, error) {
	query := r.URL.Query()

	if query.Get("state") != h.state {
		return nil, fmt.Errorf("%w: state mismatch on callback", shared.ErrAuthFailed)
	}

	code := query.Get("code")
	if code == "" {
		reason := query.Get("error")
		if reason == "" {
			reason = "no authorization code in callback"
		}
		if desc := query.Get("error_description"); desc != "" {
			reason += ": " + desc
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthFailed, reason)
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)
	}

	return token, nil
}

// finish is reached at most once per handler, gated by the handled flag.
func (h *OAuthHandler) finish(result CallbackResult) {
	h.results <- result
	close(h.results)
}

// Result returns the channel the flow's single outcome arrives on.
func (h *OAuthHandler) Result() <-chan CallbackResult {
	return h.results
}

const successPage = `<!DOCTYPE html>
<html>
<head>
  <title>Spotify Connected</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
           display: flex; align-items: center; justify-content: center;
           height: 100vh; margin: 0; background: #191414; }
    .card { text-align: center; background: #fff;
            padding: 2.5rem 3rem; border-radius: 12px; }
    h1 { color: #1DB954; margin: 0 0 0.75rem 0; }
    p { color: #555; margin: 0; }
  </style>
</head>
<body>
  <div class="card">
    <h1>Spotify connected</h1>
    <p>You can close this tab. The migration continues in the terminal.</p>
  </div>
</body>
</html>
`
