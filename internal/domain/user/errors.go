package user

import (
	"errors"
	"fmt"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailExists    = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidDepartment  = errors.New("invalid department")
	ErrNoFieldsToUpdate   = errors.New("no valid fields to update")
	ErrCannotModifySelf   = errors.New("cannot disable or delete your own account")
	ErrUserDisabled       = fmt.Errorf("%w: user is disabled", access.ErrForbidden)
	ErrEmailClaimRequired = errors.New("token has no email claim")
)
