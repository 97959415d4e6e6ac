package domain

// Profile is the staff member's identity record as returned by the remote
// API on login. It is persisted locally alongside the remote token.
type Profile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Checked     bool   `json:"checked"`
}

// Session is the process-wide authentication state. Token and User are
// always both set or both unset; a Session with an empty Token is "absent".
type Session struct {
	Token string
	User  *Profile
}

// Present reports whether the session holds an authenticated identity.
func (s Session) Present() bool {
	return s.Token != "" && s.User != nil
}
