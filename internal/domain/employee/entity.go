package employee

import "time"

type Position string

const (
	PositionJunior  Position = "Junior"
	PositionMid     Position = "Mid"
	PositionSenior  Position = "Senior"
	PositionLead    Position = "Lead"
	PositionManager Position = "Manager"
)

var Positions = []Position{PositionJunior, PositionMid, PositionSenior, PositionLead, PositionManager}

func (p Position) IsValid() bool {
	switch p {
	case PositionJunior, PositionMid, PositionSenior, PositionLead, PositionManager:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

type Employee struct {
	EmployeeID string
	Name       string
	Department string
	Position   Position
	Status     Status
	Email      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive checks if the employee is currently employed
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}
