package user

import "time"

// User is the minimal roster record the engine needs: identifiers only, no
// credentials or session state.
type User struct {
	ID        string
	Email     string
	FullName  string
	IsAdmin   bool
	IsActive  bool
	CreatedAt time.Time
}
