package errors

import "net/http"

var (
	ErrPermissionDenied = New(
		"PERMISSION_DENIED",
		"Location permission denied",
		http.StatusForbidden,
	)

	ErrNetworkFailure = New(
		"NETWORK_FAILURE",
		"Backend request failed",
		http.StatusBadGateway,
	)

	ErrParseFailure = New(
		"PARSE_FAILURE",
		"Malformed response content",
		http.StatusBadGateway,
	)

	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"No cached location for device",
		http.StatusNotFound,
	)

	ErrAlertNotFound = New(
		"ALERT_NOT_FOUND",
		"No alert matches the zone",
		http.StatusNotFound,
	)

	ErrTipNotFound = New(
		"TIP_NOT_FOUND",
		"No tip available",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrSettingsStore = New(
		"SETTINGS_STORE_ERROR",
		"Settings persistence failed",
		http.StatusInternalServerError,
	)

	ErrHistoryStore = New(
		"HISTORY_STORE_ERROR",
		"History journal operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrNotTracking = New(
		"NOT_TRACKING",
		"Location tracking is not active",
		http.StatusConflict,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
