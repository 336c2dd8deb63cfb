package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestErrorMessageComposition(t *testing.T) {
	cause := errors.New("connection refused")
	err := APIWrap("Gemini API request failed", cause)
	if got := err.Error(); got != "Gemini API request failed: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped cause lost")
	}

	bare := Validationf("Prompt cannot be empty")
	if got := bare.Error(); got != "Prompt cannot be empty" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{Validationf("bad input"), KindValidation},
		{Authentication("denied", 401), KindAuthentication},
		{RateLimit("slow down", 429), KindRateLimit},
		{ContentPolicy("blocked", 400), KindContentPolicy},
		{APIStatus("boom", 500), KindAPI},
		{ImageProcessing("decode failed", errors.New("bad byte")), KindImageProcessing},
		{Configurationf("missing key"), KindConfiguration},
		{errors.New("foreign"), KindUnknown},
		{fmt.Errorf("wrapped: %w", RateLimit("slow down", 429)), KindRateLimit},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindValidation:      "ValidationError",
		KindAuthentication:  "AuthenticationError",
		KindRateLimit:       "RateLimitError",
		KindContentPolicy:   "ContentPolicyError",
		KindAPI:             "APIError",
		KindImageProcessing: "ImageProcessingError",
		KindConfiguration:   "ConfigurationError",
		KindUnknown:         "Error",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestStatusOf(t *testing.T) {
	if got := StatusOf(RateLimit("slow down", 429)); got != 429 {
		t.Fatalf("StatusOf = %d, want 429", got)
	}
	if got := StatusOf(errors.New("foreign")); got != 0 {
		t.Fatalf("StatusOf(foreign) = %d, want 0", got)
	}
}

func TestMapUpstreamStatus(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   Kind
	}{
		{http.StatusUnauthorized, "", KindAuthentication},
		{http.StatusForbidden, "", KindAuthentication},
		{http.StatusTooManyRequests, "", KindRateLimit},
		{http.StatusBadRequest, `{"error":{"message":"blocked by SAFETY settings"}}`, KindContentPolicy},
		{http.StatusBadRequest, `{"error":{"message":"request was Blocked"}}`, KindContentPolicy},
		{http.StatusBadRequest, `{"error":{"message":"invalid argument"}}`, KindAPI},
		{http.StatusInternalServerError, "oops", KindAPI},
		{http.StatusBadGateway, "", KindAPI},
	}
	for _, tc := range cases {
		err := MapUpstreamStatus(tc.status, tc.body)
		if err.Kind != tc.want {
			t.Fatalf("MapUpstreamStatus(%d, %q).Kind = %v, want %v", tc.status, tc.body, err.Kind, tc.want)
		}
		if err.StatusCode != tc.status {
			t.Fatalf("MapUpstreamStatus(%d).StatusCode = %d", tc.status, err.StatusCode)
		}
	}
}

func TestMapUpstreamStatusAPIMessageCarriesStatusAndBody(t *testing.T) {
	err := MapUpstreamStatus(503, "  upstream unavailable \n")
	if !strings.Contains(err.Message, "503") {
		t.Fatalf("message %q does not carry the status", err.Message)
	}
	if !strings.Contains(err.Message, "upstream unavailable") {
		t.Fatalf("message %q does not carry the body", err.Message)
	}
}
