package dto

import "time"

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse lista paginada genérica devuelta dentro de data.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// Response envoltorio uniforme de éxito.
type Response struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse envoltorio uniforme de error. Path es "<MÉTODO> <ruta>" de la petición.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Errors    any       `json:"errors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// FieldError detalle de validación de un campo.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}
