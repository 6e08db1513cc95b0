package dto

type RateLimitErrorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	RetryAfter int    `json:"retry_after"`
}

// ErrorResponse is the bare {"error": "..."} body used by the guard rails.
type ErrorResponse struct {
	Error string `json:"error"`
}

const RateLimitExceededCode = "rate_limit_exceeded"
