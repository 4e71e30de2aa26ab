package service

// Session identifies the caller of a cart or checkout operation. AccountID
// is nil for guests; CartKey identifies the client-held cart mirror and is
// present for every shopper, signed in or not. The session is passed
// explicitly on every call instead of living in ambient state.
type Session struct {
	AccountID *int
	CartKey   string
}

// Authenticated reports whether the session belongs to a signed-in account.
func (s Session) Authenticated() bool {
	return s.AccountID != nil
}
