// internal/client/authstate/guard.go
package authstate

import "net/url"

// Decision is what the guard tells the embedding UI to render. Exactly one
// applies to any state.
type Decision int

const (
	// DecisionLoading: show a placeholder; the context has not settled.
	// This also covers first paint before reconciliation, so protected
	// views never flash a login prompt at a signed-in user.
	DecisionLoading Decision = iota
	// DecisionAllow: render the protected content.
	DecisionAllow
	// DecisionPrompt: show an inline login prompt with a way back.
	DecisionPrompt
	// DecisionRedirect: navigate to the login page immediately.
	DecisionRedirect
)

// GuardMode selects prompt or redirect behavior for the unauthenticated
// case, per mount.
type GuardMode int

const (
	ModePrompt GuardMode = iota
	ModeRedirect
)

// Guard gates one protected view on the auth context's state.
type Guard struct {
	Mode      GuardMode
	LoginPath string
}

// Outcome bundles the decision with the login URL (for prompt and redirect
// outcomes), which carries the originating path as callbackUrl.
type Outcome struct {
	Decision Decision
	LoginURL string
}

// Evaluate maps a state snapshot to a render decision for a view at
// fromPath.
func (g Guard) Evaluate(state State, fromPath string) Outcome {
	if state.Loading {
		return Outcome{Decision: DecisionLoading}
	}
	if state.IsAuthenticated {
		return Outcome{Decision: DecisionAllow}
	}

	loginPath := g.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	loginURL := loginPath + "?callbackUrl=" + url.QueryEscape(fromPath)

	if g.Mode == ModeRedirect {
		return Outcome{Decision: DecisionRedirect, LoginURL: loginURL}
	}
	return Outcome{Decision: DecisionPrompt, LoginURL: loginURL}
}
