package cryptox

import (
	"encoding/json"
	"errors"
)

var errAbsent = errors.New("no decoded value")

// Result is the outcome of Decode: either Decoded with a JSON document or
// Absent with the reason. Absent is an expected outcome (nothing persisted,
// key rotated, blob damaged) and callers treat all of its reasons alike.
type Result struct {
	raw    json.RawMessage
	reason error
}

// Decoded wraps a valid JSON document.
func Decoded(doc json.RawMessage) Result {
	return Result{raw: doc}
}

// Absent records why nothing could be decoded.
func Absent(reason error) Result {
	if reason == nil {
		reason = errAbsent
	}
	return Result{reason: reason}
}

// Ok reports whether the result carries a value.
func (r Result) Ok() bool {
	return r.reason == nil && r.raw != nil
}

// Raw returns the decrypted JSON document, or nil when absent.
func (r Result) Raw() json.RawMessage {
	if !r.Ok() {
		return nil
	}
	return r.raw
}

// Value returns the document decoded into generic Go values
// (map[string]any, []any, string, float64, bool, nil). It is nil when absent.
func (r Result) Value() any {
	if !r.Ok() {
		return nil
	}
	var v any
	if err := json.Unmarshal(r.raw, &v); err != nil {
		return nil
	}
	return v
}

// Unmarshal decodes the document into v. It returns the absence reason when
// there is no document.
func (r Result) Unmarshal(v any) error {
	if !r.Ok() {
		return r.Reason()
	}
	return json.Unmarshal(r.raw, v)
}

// Reason explains an Absent result; it is nil for Decoded results.
func (r Result) Reason() error {
	if r.Ok() {
		return nil
	}
	if r.reason == nil {
		return errAbsent
	}
	return r.reason
}
