package jsonrpc

import (
	"fmt"
)

// Keys of the result payload a monitored service returns.
const (
	ResultNameKey         = "name"
	ResultAvailabilityKey = "disponibility"
)

// Kind tags the variant held by an Outcome.
type Kind int

const (
	KindInvalid Kind = iota
	KindResult
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindResult:
		return "result"
	case KindError:
		return "error"
	default:
		return "invalid"
	}
}

// Result is the payload of a valid result reply.
type Result struct {
	Name         string
	Availability float64
}

// ErrorObject is the payload of a valid error reply.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Outcome is the classification of one reply. Only the field matching Kind
// is meaningful; Reason explains an Invalid outcome.
type Outcome struct {
	Kind   Kind
	Result Result
	Error  ErrorObject
	Reason string
}

func ResultOutcome(name string, availability float64) Outcome {
	return Outcome{Kind: KindResult, Result: Result{Name: name, Availability: availability}}
}

func ErrorOutcome(code int, message string) Outcome {
	return Outcome{Kind: KindError, Error: ErrorObject{Code: code, Message: message}}
}

func InvalidOutcome(reason string) Outcome {
	return Outcome{Kind: KindInvalid, Reason: reason}
}

// Classify sorts a parsed reply into a result, an error or an invalid
// message. The envelope (jsonrpc version and id) is checked once; the
// result payload is tried first and the error payload only if it fails.
// Classify has no side effects.
func Classify(doc any, expectedID int) Outcome {
	obj, reason := checkEnvelope(doc, expectedID)
	if obj == nil {
		return InvalidOutcome(reason)
	}

	res, resultReason := resultPayload(obj)
	if resultReason == "" {
		return Outcome{Kind: KindResult, Result: res}
	}
	e, errorReason := errorPayload(obj)
	if errorReason == "" {
		return Outcome{Kind: KindError, Error: e}
	}

	_, hasResult := obj["result"]
	_, hasError := obj["error"]
	switch {
	case hasResult:
		return InvalidOutcome(resultReason)
	case hasError:
		return InvalidOutcome(errorReason)
	default:
		return InvalidOutcome(`reply has neither "result" nor "error"`)
	}
}

func checkEnvelope(doc any, expectedID int) (map[string]any, string) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, "reply is not a JSON object"
	}

	version, ok := obj["jsonrpc"].(string)
	if !ok {
		return nil, `missing or non-string "jsonrpc"`
	}
	if version != Version {
		return nil, fmt.Sprintf(`"jsonrpc" is %q, expected %q`, version, Version)
	}

	raw, ok := obj["id"]
	if !ok {
		return nil, `missing "id"`
	}
	switch raw.(type) {
	case nil, string:
		// string and null ids are accepted as-is
	default:
		id, ok := integerValue(raw)
		if !ok {
			return nil, `"id" is not an integer, a string or null`
		}
		if id != int64(expectedID) {
			return nil, fmt.Sprintf(`"id" is %d, expected %d`, id, expectedID)
		}
	}
	return obj, ""
}

func resultPayload(obj map[string]any) (Result, string) {
	raw, ok := obj["result"]
	if !ok {
		return Result{}, `missing "result"`
	}
	res, ok := raw.(map[string]any)
	if !ok {
		return Result{}, `"result" is not an object`
	}
	name, ok := res[ResultNameKey].(string)
	if !ok {
		return Result{}, fmt.Sprintf("result has no string %q", ResultNameKey)
	}
	availability, ok := realValue(res[ResultAvailabilityKey])
	if !ok {
		return Result{}, fmt.Sprintf("result has no real %q", ResultAvailabilityKey)
	}
	return Result{Name: name, Availability: availability}, ""
}

func errorPayload(obj map[string]any) (ErrorObject, string) {
	raw, ok := obj["error"]
	if !ok {
		return ErrorObject{}, `missing "error"`
	}
	e, ok := raw.(map[string]any)
	if !ok {
		return ErrorObject{}, `"error" is not an object`
	}
	code, ok := integerValue(e["code"])
	if !ok {
		return ErrorObject{}, `error has no integer "code"`
	}
	msg, ok := e["message"].(string)
	if !ok {
		return ErrorObject{}, `error has no string "message"`
	}
	return ErrorObject{Code: int(code), Message: msg}, ""
}
