package access

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden         = errors.New("access denied")
	ErrAdminRequired     = fmt.Errorf("%w: admin role required", ErrForbidden)
	ErrPrivilegeRequired = fmt.Errorf("%w: admin or manager role required", ErrForbidden)
	ErrOtherDepartment   = fmt.Errorf("%w: record belongs to another department", ErrForbidden)
	ErrNotOwnRecord      = fmt.Errorf("%w: record belongs to another employee", ErrForbidden)
	ErrNoDepartment      = fmt.Errorf("%w: manager has no linked employee department", ErrForbidden)
	ErrNoEmployeeLink    = fmt.Errorf("%w: user has no linked employee record", ErrForbidden)
	ErrUnknownRole       = fmt.Errorf("%w: unknown role", ErrForbidden)
)
