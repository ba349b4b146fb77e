package authstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"diaspora-portal-service/internal/domain/auth"
)

func TestGuardEvaluate(t *testing.T) {
	identity := &auth.UserIdentity{ID: "usr_01"}

	tests := []struct {
		name     string
		guard    Guard
		state    State
		fromPath string
		want     Decision
		wantURL  string
	}{
		{
			name:  "loading wins over everything",
			guard: Guard{Mode: ModeRedirect, LoginPath: "/login"},
			state: State{Loading: true},
			want:  DecisionLoading,
		},
		{
			name:  "loading even with cached user",
			guard: Guard{Mode: ModePrompt, LoginPath: "/login"},
			state: State{Loading: true, User: identity, IsAuthenticated: true},
			want:  DecisionLoading,
		},
		{
			name:  "authenticated allows",
			guard: Guard{Mode: ModeRedirect, LoginPath: "/login"},
			state: State{User: identity, IsAuthenticated: true},
			want:  DecisionAllow,
		},
		{
			name:     "anonymous prompts by default",
			guard:    Guard{Mode: ModePrompt, LoginPath: "/login"},
			state:    State{},
			fromPath: "/shareholder/dashboard",
			want:     DecisionPrompt,
			wantURL:  "/login?callbackUrl=%2Fshareholder%2Fdashboard",
		},
		{
			name:     "anonymous redirects in redirect mode",
			guard:    Guard{Mode: ModeRedirect, LoginPath: "/login"},
			state:    State{},
			fromPath: "/shareholder/dashboard",
			want:     DecisionRedirect,
			wantURL:  "/login?callbackUrl=%2Fshareholder%2Fdashboard",
		},
		{
			name:     "empty login path defaults",
			guard:    Guard{Mode: ModePrompt},
			state:    State{},
			fromPath: "/admin",
			want:     DecisionPrompt,
			wantURL:  "/login?callbackUrl=%2Fadmin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.guard.Evaluate(tt.state, tt.fromPath)
			assert.Equal(t, tt.want, out.Decision)
			assert.Equal(t, tt.wantURL, out.LoginURL)
		})
	}
}
