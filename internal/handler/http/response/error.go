package response

import (
	"errors"
	"net/http"

	"github.com/workshift-ph/timeclock-backend/internal/domain/auth"
	"github.com/workshift-ph/timeclock-backend/internal/domain/payslip"
	"github.com/workshift-ph/timeclock-backend/internal/domain/timeentry"
	"github.com/workshift-ph/timeclock-backend/internal/domain/user"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrOAuthEmailNotLinked):
		Forbidden(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Time tracking domain errors
	case errors.Is(err, timeentry.ErrAlreadyClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, timeentry.ErrNoActiveSession):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timeentry.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timeentry.ErrInvalidWeekStart):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrLogNotFound):
		NotFound(w, "Payslip log not found")
	case errors.Is(err, payslip.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, payslip.ErrSelectorRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payslip.ErrNoEntriesInWindow):
		NotFound(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
