package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Version is the only protocol version spoken on either side of the wire.
const Version = "2.0"

// MethodGetDisponibility is the call every monitored service answers.
const MethodGetDisponibility = "get_disponibility"

// Request is a JSON-RPC 2.0 request envelope. Field order matches the wire
// format: {"jsonrpc":"2.0","method":"...","params":[...],"id":n}.
type Request struct {
	JSONRPC string   `json:"jsonrpc"`
	Method  string   `json:"method"`
	Params  []string `json:"params,omitempty"`
	ID      int      `json:"id"`
}

// BuildRequest returns the envelope for a single call. The caller owns id
// uniqueness. An empty method is a programming error and panics.
func BuildRequest(method string, params []string, id int) Request {
	if method == "" {
		panic("jsonrpc: BuildRequest called with empty method")
	}
	var p []string
	if len(params) > 0 {
		p = append(make([]string, 0, len(params)), params...)
	}
	return Request{
		JSONRPC: Version,
		Method:  method,
		Params:  p,
		ID:      id,
	}
}

// Encode serializes the request to its wire form.
func (r Request) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRequest parses a request document. Unknown fields are rejected so a
// decoded request carries exactly the fields Encode writes.
func DecodeRequest(data []byte) (Request, error) {
	var r Request
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if r.JSONRPC != Version {
		return Request{}, fmt.Errorf("decode request: jsonrpc is %q, expected %q", r.JSONRPC, Version)
	}
	if r.Method == "" {
		return Request{}, fmt.Errorf("decode request: missing method")
	}
	return r, nil
}

// IDSequence hands out request ids 1, 2, 3, ... for one run.
// Not safe for concurrent use.
type IDSequence struct {
	last int
}

func (s *IDSequence) Next() int {
	s.last++
	return s.last
}
