package domain

import "time"

// Occupant is a dorm resident as supplied by the roster collaborator.
// The engine never mutates occupants; it only resolves cohorts and
// clearance listings from them.
type Occupant struct {
	ID        string
	DormID    string
	Name      string
	Room      string
	Active    bool
	CreatedAt time.Time
}
