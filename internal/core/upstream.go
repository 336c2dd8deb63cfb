package core

import (
	"fmt"
	"net/http"
	"strings"
)

// MapUpstreamStatus translates a non-2xx upstream response into the error
// taxonomy. Both provider families share the mapping:
//
//	401/403                   -> AuthenticationError
//	429                       -> RateLimitError
//	400 with a safety marker  -> ContentPolicyError
//	anything else             -> APIError carrying status and raw body
func MapUpstreamStatus(status int, body string) *Error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Authentication("Authentication failed. Please check your API key.", status)
	case status == http.StatusTooManyRequests:
		return RateLimit("Rate limit exceeded. Please try again later.", status)
	case status == http.StatusBadRequest && hasSafetyMarker(body):
		return ContentPolicy("Content was blocked by safety filters. Please modify your prompt.", status)
	default:
		return APIStatus(fmt.Sprintf("API request failed with status %d: %s", status, strings.TrimSpace(body)), status)
	}
}

func hasSafetyMarker(body string) bool {
	upper := strings.ToUpper(body)
	return strings.Contains(upper, "SAFETY") || strings.Contains(upper, "BLOCKED")
}
