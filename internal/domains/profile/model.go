package profile

// Profile is a read projection of a user plus the "is this viewer
// following them" flag, computed per request relative to an optional
// viewer identity. It is never stored.
type Profile struct {
	Username  string  `json:"username"`
	Bio       string  `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}
