package shared

import "errors"

// Error taxonomy shared by all modules. Repositories and services return
// these sentinels unchanged; only the HTTP layer translates them.
var (
	// ErrNotFound indicates a referenced entity or composite key is absent.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a duplicate unique key on creation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrAlreadyAssigned indicates the user-role join row already exists.
	ErrAlreadyAssigned = errors.New("role already assigned")
	// ErrConstraint indicates a dangling foreign key or other integrity
	// failure reported by the store on write.
	ErrConstraint = errors.New("constraint violation")
	// ErrPermissionDenied indicates a failed authorization check. Distinct
	// from ErrNotFound so callers can choose how much to reveal.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserSafeMessage returns a message suitable for API consumers. Taxonomy
// errors pass through; anything else collapses to a generic message so
// store internals never leak.
func UserSafeMessage(err error) string {
	for _, known := range []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrAlreadyAssigned,
		ErrConstraint,
		ErrPermissionDenied,
		ErrInvalidCredentials,
	} {
		if errors.Is(err, known) {
			return err.Error()
		}
	}
	return "internal error"
}
