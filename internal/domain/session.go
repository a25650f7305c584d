package domain

// Session is the authenticated identity plus its bearer token. It exists only
// while logged in: an empty token means logged-out.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SessionStore persists the session across process restarts.
//
// Restore returns (nil, nil) when nothing is persisted. It reconstructs the
// session from local state only and makes no claim that the token is still
// valid against the server; callers that care must validate it themselves.
// After Clear, Restore returns nil until the next Persist.
type SessionStore interface {
	Persist(session *Session) error
	Restore() (*Session, error)
	Clear() error
}
