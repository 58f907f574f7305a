package response

import "net/http"

var (
	ErrInvalidRequest = newError(http.StatusUnprocessableEntity, "Invalid request")
	ErrUnauthorized   = newError(http.StatusUnauthorized, "Not authenticated")
	ErrTokenInvalid   = newError(http.StatusUnauthorized, "Invalid or expired token")
	ErrForbidden      = newError(http.StatusForbidden, "Permission denied")
	ErrNotFound       = newError(http.StatusNotFound, "Not Found")
	ErrDatabase       = newError(http.StatusInternalServerError, "Database error")
	ErrServerInternal = newError(http.StatusInternalServerError, "Internal server error")

	ErrActivityNotFound = newError(http.StatusNotFound, "Activity not found")
	ErrActivityExists   = newError(http.StatusConflict, "Activity already exists")
	ErrAlreadySignedUp  = newError(http.StatusBadRequest, "Student is already signed up")
	ErrActivityFull     = newError(http.StatusBadRequest, "Activity is full")
	ErrNotSignedUp      = newError(http.StatusBadRequest, "Student is not signed up for this activity")
)
