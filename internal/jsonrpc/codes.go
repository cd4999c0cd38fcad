package jsonrpc

// Standard JSON-RPC 2.0 error codes plus the server-range extensions used by
// the demo service.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	CodeServerErrorMin = -32099
	CodeServerErrorMax = -32000

	CodeNotificationUnsupported = -32089
	CodeBatchUnsupported        = -32088
)

// CodeText returns a short label for well-known codes, or "" when the code
// is application specific.
func CodeText(code int) string {
	switch code {
	case CodeParseError:
		return "parse error"
	case CodeInvalidRequest:
		return "invalid request"
	case CodeMethodNotFound:
		return "method not found"
	case CodeInvalidParams:
		return "invalid params"
	case CodeInternalError:
		return "internal error"
	case CodeNotificationUnsupported:
		return "notifications not supported"
	case CodeBatchUnsupported:
		return "batch requests not supported"
	}
	if code >= CodeServerErrorMin && code <= CodeServerErrorMax {
		return "server error"
	}
	return ""
}

// Response is a reply envelope as written by a server.
type Response struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      any          `json:"id"`
	Result  any          `json:"result,omitempty"`
	Error   *ErrorObject `json:"error,omitempty"`
}

func NewResult(id any, result any) Response {
	return Response{JSONRPC: Version, ID: id, Result: result}
}

func NewError(id any, code int, message string) Response {
	return Response{JSONRPC: Version, ID: id, Error: &ErrorObject{Code: code, Message: message}}
}
