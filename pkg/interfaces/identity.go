package interfaces

// Session describes an authenticated identity as reported by the upstream
// identity provider. A nil session means the viewer is signed out.
type Session struct {
	UID    string
	Email  string
	Claims map[string]any
}

// IdentityProvider surfaces session-change events from the upstream identity
// service. Subscribe must invoke the callback with the current session state
// immediately and again on every subsequent change; the returned function
// cancels the subscription.
type IdentityProvider interface {
	Subscribe(fn func(session *Session)) (unsubscribe func())
}
