// Package response holds the JSON envelopes of the machine-facing endpoints.
package response

import (
	"sort"
	"strings"
)

type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse(data any) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Error:   err,
		Details: details,
	}
}

// Unavailable names the components that failed their health check.
func Unavailable(down []string) ErrorResponse {
	sorted := append([]string(nil), down...)
	sort.Strings(sorted)

	return ErrorResponseWithDetails(CodeServiceUnavailable, "down: "+strings.Join(sorted, ", "))
}
