package user

// Profile is a known community member. Profiles are written by an external
// sync process; this service only reads them.
type Profile struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Discriminator int    `json:"discriminator"`
	Avatar        string `json:"avatar"`
}

// Ref is the shape user references take in API responses. Without expansion
// only UserID is set; with expansion the profile fields are filled in when
// the profile is known.
type Ref struct {
	UserID        string  `json:"user_id"`
	Username      *string `json:"username,omitempty"`
	Discriminator *int    `json:"discriminator,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
}

// Stub returns the bare reference used when expansion is off or the profile
// is unknown.
func Stub(userID string) *Ref {
	return &Ref{UserID: userID}
}

// RefFromProfile builds a fully expanded reference.
func RefFromProfile(p *Profile) *Ref {
	return &Ref{
		UserID:        p.UserID,
		Username:      &p.Username,
		Discriminator: &p.Discriminator,
		Avatar:        &p.Avatar,
	}
}
