package models

// SessionUser identifies the phone-verified customer behind a session.
type SessionUser struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
}

// AuthSession is the token bundle returned after successful OTP
// verification. The access token authorizes booking submission.
type AuthSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    int64       `json:"expires_at"` // unix seconds
	User         SessionUser `json:"user"`
}
