package models

import "encoding/json"

// Envelope is the wrapper every inventory API endpoint answers with.
// AllOK=false is a reported failure; Message then carries the server's explanation.
type Envelope[T any] struct {
	AllOK   bool   `json:"allOK"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// RawEnvelope keeps the data payload undecoded so callers can overlay it onto a local copy
type RawEnvelope = Envelope[json.RawMessage]
