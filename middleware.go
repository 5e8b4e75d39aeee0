package vtcore

// Middleware intercepts interpreter output, allowing custom behavior before/after delivery.
// Each field wraps one path: receive the original value and a next function to invoke the
// default behavior. Leaving a field nil keeps the default path; not calling next suppresses it.
type Middleware struct {
	// Action wraps delivery of each forwarded action to the Handler.
	Action func(a Action, next func(Action))

	// Response wraps response bytes on their way to the ResponseProvider.
	Response func(p []byte, next func([]byte))
}

// Merge fills nil fields of m from other. Fields already set on m win.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if m.Action == nil {
		m.Action = other.Action
	}
	if m.Response == nil {
		m.Response = other.Response
	}
}
