package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeIDExists  = errors.New("employee ID already exists")
	ErrInvalidDepartment = errors.New("invalid department")
	ErrInvalidPosition   = errors.New("invalid position")
)
