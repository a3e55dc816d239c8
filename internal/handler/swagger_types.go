package handler

import (
	"github.com/google/uuid"

	"docgen/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// CreateEntityRequest represents the create entity request body.
type CreateEntityRequest struct {
	Name string `json:"name" binding:"required" example:"Full name"`
	Code string `json:"code" binding:"required" example:"{FIO}"`
}

// UpdateEntityRequest represents the update entity request body.
type UpdateEntityRequest struct {
	Name *string `json:"name" example:"Client full name"`
	Code *string `json:"code" example:"{FULL_NAME}"`
}

// CreateClientRequest represents the create client request body.
type CreateClientRequest struct {
	Name string `json:"name" binding:"required" example:"Ivan Petrov"`
}

// UpdateClientRequest represents the update client request body.
type UpdateClientRequest struct {
	Name *string `json:"name" example:"Ivan P. Petrov"`
}

// SetValueRequest represents the set value request body.
type SetValueRequest struct {
	EntityID  uuid.UUID `json:"entity_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientID  uuid.UUID `json:"client_id" binding:"required" example:"660e8400-e29b-41d4-a716-446655440001"`
	ValueText string    `json:"value_text" example:"Ivan Petrov"`
}

// UpdateValueRequest represents the update value request body.
type UpdateValueRequest struct {
	ValueText string `json:"value_text" example:"Ivan P. Petrov"`
}

// GenerateRequest represents the generate request body.
type GenerateRequest struct {
	TemplateID  uuid.UUID   `json:"template_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientIDs   []uuid.UUID `json:"client_ids" binding:"required"`
	UserID      *uuid.UUID  `json:"user_id" example:"770e8400-e29b-41d4-a716-446655440002"`
	NotifyEmail string      `json:"notify_email" example:"office@example.com"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// PlaceholdersResponse lists the tokens found in a template.
type PlaceholdersResponse struct {
	TemplateID   uuid.UUID `json:"template_id"`
	Placeholders []string  `json:"placeholders" example:"{CODE},{FIO}"`
}

// HistoryWithDownloadURL represents a history entry with a presigned download link.
type HistoryWithDownloadURL struct {
	Entry       domain.GenerationHistory `json:"entry"`
	DownloadURL string                   `json:"download_url" example:"https://s3.amazonaws.com/docgen-storage/outputs/...?X-Amz-Signature=..."`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
