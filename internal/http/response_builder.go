// Package http serves the ledger, dashboard and report views as a JSON API.
//
// This file implements a small builder for JSON responses so every handler
// writes status, headers and body the same way.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"finboard/internal/core"
	"finboard/internal/ports"
)

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	headers    map[string]string
	data       any
}

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Data sets the value encoded as the response body. A nil value writes no body.
func (b *JSONResponseBuilder) Data(v any) *JSONResponseBuilder {
	b.data = v
	return b
}

// StatusCode returns the configured status code.
func (b *JSONResponseBuilder) StatusCode() int {
	return b.statusCode
}

// Write sends the response.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) error {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if b.data == nil {
		w.WriteHeader(b.statusCode)
		return nil
	}
	body, err := json.Marshal(b.data)
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	_, err = w.Write(append(body, '\n'))
	return err
}

// ErrorResponse creates an error response with the given status and message.
func ErrorResponse(status int, message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(status).Data(ErrorBody{Error: message})
}

func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

func NotFoundError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

func InternalError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, "internal error")
}

// ResponseForError maps a service error onto a response. Validation errors
// are 400 and missing records 404; everything else is an opaque 500.
func ResponseForError(err error) *JSONResponseBuilder {
	switch {
	case core.IsValidationError(err):
		return BadRequestError(err.Error())
	case errors.Is(err, ports.ErrNotFound):
		return NotFoundError(err.Error())
	default:
		return InternalError()
	}
}

// NoContent creates an empty 204 response.
func NoContent() *JSONResponseBuilder {
	return NewJSONResponse().Status(http.StatusNoContent)
}

// Created creates a 201 response carrying v.
func Created(v any) *JSONResponseBuilder {
	return NewJSONResponse().Status(http.StatusCreated).Data(v)
}
