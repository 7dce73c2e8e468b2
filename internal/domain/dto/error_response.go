package dto

import "time"

// ErrorResponse is the standard JSON error body returned by every endpoint.
//
// Fields:
//   - Message: short, human readable description of what failed.
//   - ErrorDetails: underlying error text (upstream message, validation detail).
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"Error fetching LTP data"`
	ErrorDetails string    `json:"error,omitempty" example:"upstream data request failed: NSE_RELIANCE: status 502"`
	Timestamp    time.Time `json:"timestamp" example:"2025-01-02T09:15:00Z"`
}

// Error implements the error interface so an ErrorResponse can travel through c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
