package auth

import "context"

// Decision is a route guard outcome.
type Decision string

const (
	// DecisionAllow lets the request through.
	DecisionAllow Decision = "allow"
	// DecisionRedirectToLogin bounces the visitor to the sign-in page.
	DecisionRedirectToLogin Decision = "redirect_to_login"
)

// Guard gates admin routes. Decide blocks until the first identity report
// lands so a protected route never renders for a visitor whose role is still
// unknown.
type Guard struct {
	auth Service
}

// NewGuard wraps the auth service as a route guard.
func NewGuard(auth Service) *Guard {
	return &Guard{auth: auth}
}

// Decide waits for identity resolution, then allows only signed-in admins.
func (g *Guard) Decide(ctx context.Context) (Decision, error) {
	if err := g.auth.WaitResolved(ctx); err != nil {
		return DecisionRedirectToLogin, err
	}
	state := g.auth.State()
	if state.Session == nil || !state.Actor.IsAdmin() {
		return DecisionRedirectToLogin, nil
	}
	return DecisionAllow, nil
}
