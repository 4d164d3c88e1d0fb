package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"finboard/internal/core"
	"finboard/internal/datekey"
)

const maxBodyBytes = 64 << 10

// Amount accepts a JSON number or a numeric string with either decimal
// separator. Malformed text decodes to 0 and is rejected by validation.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(core.ParseAmount(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(core.ParseAmount(n.String()))
	return nil
}

type (
	createCategoryRequest struct {
		Name   string `json:"name"`
		Alias  string `json:"alias"`
		TypeID string `json:"typeId"`
	}

	createTransactionRequest struct {
		CategoryID          string `json:"categoryId"`
		Amount              Amount `json:"amount"`
		Date                string `json:"date"`
		Description         string `json:"description"`
		PaymentMethod       string `json:"paymentMethod"`
		IsRecurringInstance bool   `json:"isRecurringInstance"`
	}

	createBillRequest struct {
		Name        string `json:"name"`
		CategoryID  string `json:"categoryId"`
		Amount      Amount `json:"amount"`
		Frequency   string `json:"frequency"`
		StartDate   string `json:"startDate"`
		NextDueDate string `json:"nextDueDate"`
		Active      *bool  `json:"active"`
	}

	updateBillRequest struct {
		Active *bool `json:"active"`
	}
)

// DecodeJSON reads a single JSON object from the request body into v.
// Unknown fields and trailing data are rejected.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// ParseRange reads start and end from query. With neither present it
// defaults to the month containing today, or the previous month when
// preset=last-month. Any accepted day format is allowed.
func ParseRange(query url.Values, today datekey.Day) (datekey.Range, error) {
	start := sanitizeInput(query.Get("start"))
	end := sanitizeInput(query.Get("end"))

	if start == "" && end == "" {
		switch strings.ToLower(sanitizeInput(query.Get("preset"))) {
		case "", "this-month":
			return datekey.ThisMonth(today), nil
		case "last-month":
			return datekey.LastMonth(today), nil
		default:
			return datekey.Range{}, fmt.Errorf("unknown preset %q", query.Get("preset"))
		}
	}

	rng := datekey.ParseRange(start, end)
	if !rng.Valid() {
		return datekey.Range{}, fmt.Errorf("invalid range %q to %q", start, end)
	}
	return rng, nil
}
