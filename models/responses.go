package models

import (
	"time"
)

// APIResponse is the standard response envelope for every endpoint.
type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError carries a stable machine code plus a human message.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// AddToCollectionResult reports the outcome of an add-or-merge.
type AddToCollectionResult struct {
	ID     string `json:"id"`
	Merged bool   `json:"merged"`
}

// CatalogResponse is the provider's payload relayed unmodified.
type CatalogResponse struct {
	Data       []CardMaster `json:"data"`
	Page       int          `json:"page,omitempty"`
	PageSize   int          `json:"pageSize,omitempty"`
	Count      int          `json:"count,omitempty"`
	TotalCount int          `json:"totalCount,omitempty"`
}

// SetListResponse is the provider's set listing relayed unmodified.
type SetListResponse struct {
	Data       []Set `json:"data"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
	Count      int   `json:"count,omitempty"`
	TotalCount int   `json:"totalCount,omitempty"`
}

// StoreDiagnostics is the /test endpoint payload. The database field takes
// one of three distinct shapes: not configured, configured but unreachable,
// or connected and working.
type StoreDiagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func NewSuccessResponse(data any, message string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(code, message string, details map[string]string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	}
}
