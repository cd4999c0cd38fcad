package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/rpcmon/internal/jsonrpc"
)

// maxRequestBytes caps a call body; get_disponibility requests are tiny.
const maxRequestBytes = 1 << 20

// rpcError is a JSON-RPC failure raised while validating a call.
type rpcError struct {
	id      any
	code    int
	message string
}

func (e *rpcError) Error() string { return e.message }

func invalidRequest(id any, msg string) *rpcError {
	return &rpcError{id: id, code: jsonrpc.CodeInvalidRequest, message: "Invalid request: " + msg}
}

func invalidParams(id any, msg string) *rpcError {
	return &rpcError{id: id, code: jsonrpc.CodeInvalidParams, message: "Invalid parameters: " + msg}
}

// disponibility is the result payload of get_disponibility.
type disponibility struct {
	Name          string       `json:"name"`
	Disponibility jsonrpc.Real `json:"disponibility"`
}

// call is a validated get_disponibility request.
type call struct {
	id        any
	startDate string
	endDate   string
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	var id any
	defer func() {
		if rec := recover(); rec != nil {
			s.Logger.Error("rpc_panic", zap.Any("panic", rec))
			s.reply(w, jsonrpc.NewError(id, jsonrpc.CodeServerErrorMin, fmt.Sprintf("Internal server error: %v", rec)))
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			s.reply(w, jsonrpc.NewError(nil, jsonrpc.CodeInvalidRequest, "Invalid request: Request body too large"))
			return
		}
		s.reply(w, jsonrpc.NewError(nil, jsonrpc.CodeServerErrorMin, "Internal server error: "+err.Error()))
		return
	}

	doc, err := decodeDocument(body)
	if err != nil {
		s.reply(w, jsonrpc.NewError(nil, jsonrpc.CodeParseError, "Parse error"))
		return
	}

	c, rerr := validateCall(doc)
	if rerr != nil {
		s.Logger.Info("rpc_rejected", zap.Int("code", rerr.code), zap.String("message", rerr.message))
		s.reply(w, jsonrpc.NewError(rerr.id, rerr.code, rerr.message))
		return
	}
	id = c.id

	disp := s.Source.Availability()
	s.Logger.Info("rpc_get_disponibility",
		zap.String("start_date", c.startDate),
		zap.String("end_date", c.endDate),
		zap.Float64("disponibility", disp),
	)
	s.reply(w, jsonrpc.NewResult(c.id, disponibility{Name: s.Name, Disponibility: jsonrpc.Real(disp)}))
}

// decodeDocument parses exactly one JSON value of any type; anything after
// it, closing brackets included, is a parse error.
func decodeDocument(body []byte) (any, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON value")
	}
	return doc, nil
}

func (s *Server) reply(w http.ResponseWriter, resp jsonrpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.Logger.Warn("rpc_write_error", zap.Error(err))
	}
}

// validateCall checks doc in a fixed order: batch,
// root type, mandatory members, notification, version, method, params.
func validateCall(doc any) (call, *rpcError) {
	if _, ok := doc.([]any); ok {
		return call{}, &rpcError{code: jsonrpc.CodeBatchUnsupported, message: "JSON-RPC batch requests not supported"}
	}
	req, ok := doc.(map[string]any)
	if !ok {
		return call{}, invalidRequest(nil, "Request's root is not a JSON object")
	}

	_, hasVersion := req["jsonrpc"]
	_, hasMethod := req["method"]
	if !hasVersion || !hasMethod {
		return call{}, invalidRequest(nil, "Request is missing mandatory attributes")
	}
	id, hasID := req["id"]
	if !hasID {
		return call{}, &rpcError{code: jsonrpc.CodeNotificationUnsupported, message: "JSON-RPC notifications not supported"}
	}

	if v, _ := req["jsonrpc"].(string); v != jsonrpc.Version {
		return call{}, invalidRequest(id, fmt.Sprintf("Invalid version number: %v", req["jsonrpc"]))
	}
	method, _ := req["method"].(string)
	if method != jsonrpc.MethodGetDisponibility {
		return call{}, &rpcError{id: id, code: jsonrpc.CodeMethodNotFound, message: fmt.Sprintf("Method '%v' not found", req["method"])}
	}

	c := call{id: id}
	params, ok := req["params"]
	if !ok {
		return call{}, invalidParams(id, `Params are required for "`+method+`"`)
	}
	switch p := params.(type) {
	case []any:
		if len(p) != 2 {
			return call{}, invalidParams(id, "Array params must contain two values")
		}
		start, ok1 := p[0].(string)
		end, ok2 := p[1].(string)
		if !ok1 || !ok2 {
			return call{}, invalidParams(id, "Array params must be string values")
		}
		c.startDate, c.endDate = start, end
	case map[string]any:
		rawStart, ok1 := p["start_date"]
		rawEnd, ok2 := p["end_date"]
		if !ok1 || !ok2 {
			return call{}, invalidParams(id, `Missing key params "start_date" or "end_date"`)
		}
		start, ok1 := rawStart.(string)
		end, ok2 := rawEnd.(string)
		if !ok1 || !ok2 {
			return call{}, invalidParams(id, "Object params must be string values")
		}
		c.startDate, c.endDate = start, end
	default:
		return call{}, invalidParams(id, "Params must be an array or object")
	}
	return c, nil
}
