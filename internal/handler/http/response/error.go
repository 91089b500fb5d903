package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/attendance"
	"github.com/insighthr/insighthr-backend-go/internal/domain/employee"
	"github.com/insighthr/insighthr-backend-go/internal/domain/kpi"
	"github.com/insighthr/insighthr-backend-go/internal/domain/performance"
	"github.com/insighthr/insighthr-backend-go/internal/domain/user"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/jwt"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Authentication
	case errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, user.ErrEmailClaimRequired),
		errors.Is(err, access.ErrNoCaller):
		Unauthorized(w, err.Error())

	// Authorization, including disabled users
	case errors.Is(err, access.ErrForbidden):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, performance.ErrScoreNotFound),
		errors.Is(err, kpi.ErrKPINotFound),
		errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())

	// Conflicts
	case errors.Is(err, employee.ErrEmployeeIDExists),
		errors.Is(err, attendance.ErrAttendanceExists),
		errors.Is(err, performance.ErrScoreExists),
		errors.Is(err, kpi.ErrKPINameExists),
		errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, err.Error())

	// Domain rules
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrEmployeeInactive),
		errors.Is(err, attendance.ErrCheckOutWithoutCheckIn),
		errors.Is(err, employee.ErrInvalidDepartment),
		errors.Is(err, employee.ErrInvalidPosition),
		errors.Is(err, user.ErrInvalidDepartment),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrCannotModifySelf),
		errors.Is(err, user.ErrNoFieldsToUpdate):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
