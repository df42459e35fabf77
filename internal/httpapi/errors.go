package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorCode is the machine-readable code in an error response body.
type ErrorCode string

const (
	CodeMethodNotAllowed  ErrorCode = "method_not_allowed"
	CodeInvalidLimit      ErrorCode = "invalid_limit"
	CodeInvalidJSON       ErrorCode = "invalid_json"
	CodeReadFailed        ErrorCode = "read_failed"
	CodeTooLarge          ErrorCode = "too_large"
	CodeForbidden         ErrorCode = "forbidden"
	CodeStoreError        ErrorCode = "store_error"
	CodeSaveFailed        ErrorCode = "save_failed"
	CodeReloadFailed      ErrorCode = "reload_failed"
	CodeSyncRunning       ErrorCode = "sync_running"
	CodeStreamUnsupported ErrorCode = "stream_unsupported"
	CodeInternal          ErrorCode = "internal_error"
)

// APIError is the body of every non-2xx response:
// {"error":{"code":"invalid_limit","message":"...","request_id":"..."}}.
type APIError struct {
	Error struct {
		Code      ErrorCode `json:"code"`
		Message   string    `json:"message"`
		RequestID string    `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an APIError tagged with the request id set by RequestID.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code ErrorCode, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}
