package httpx

import (
	"errors"
	"net/http"

	"github.com/troopbase/troopbase/internal/shared"
)

// RespondError maps the shared error taxonomy onto RFC7807 responses.
// NotFound and PermissionDenied are the only members handlers may remap
// before calling this, when resource existence must not leak.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrAlreadyExists):
		Problem(w, http.StatusConflict, "Already Exists", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrAlreadyAssigned):
		Problem(w, http.StatusConflict, "Already Assigned", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrConstraint):
		Problem(w, http.StatusUnprocessableEntity, "Constraint Violation", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrPermissionDenied):
		Problem(w, http.StatusForbidden, "Forbidden", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", shared.UserSafeMessage(err))
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
