package domain

import "time"

// Project groups tasks for board rendering. Project CRUD belongs to
// the surrounding application; the core only reads projects.
type Project struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
