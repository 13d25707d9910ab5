package domain

import "time"

// User represents an account that authors task updates. User
// management itself lives outside this service; this is the minimal
// shape the core needs for authentication and history attribution.
type User struct {
	ID        string
	FullName  string
	Email     string
	Token     string
	IsActive  bool
	CreatedAt time.Time
}
