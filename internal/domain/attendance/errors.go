package attendance

import "errors"

// Attendance domain errors
var (
	// Kiosk errors
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrEmployeeInactive  = errors.New("employee is inactive")

	// General errors
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrAttendanceExists       = errors.New("attendance record already exists for this employee and date")
	ErrCheckOutWithoutCheckIn = errors.New("check-out requires a check-in")
)
