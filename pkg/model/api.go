package model

import "time"

// Response is the envelope the local web console writes for every view.
type Response struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	View      string    `json:"view,omitempty"`
	Data      any       `json:"data"`
	Error     *APIError `json:"error"`
}

// NewResponse builds a successful envelope for the given view path.
func NewResponse(reqID, view string, data any) Response {
	return Response{
		Status:    "ok",
		RequestID: reqID,
		Timestamp: time.Now().UTC(),
		View:      view,
		Data:      data,
	}
}

// NewErrorResponse builds an error envelope.
func NewErrorResponse(reqID string, apiErr *APIError) Response {
	return Response{
		Status:    "error",
		RequestID: reqID,
		Timestamp: time.Now().UTC(),
		Error:     apiErr,
	}
}
