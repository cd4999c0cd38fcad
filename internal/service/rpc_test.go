package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamed0406/rpcmon/internal/jsonrpc"
)

func post(t *testing.T, h http.Handler, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code, rr.Body.String()
}

func newTestServer() http.Handler {
	return NewServer(zap.NewNop(), "database", Fixed(1.0), 0, 0).Router()
}

func TestRPC_ResultArrayParams(t *testing.T) {
	code, body := post(t, newTestServer(),
		`{"jsonrpc":"2.0","method":"get_disponibility","params":["2016-01-01","2016-02-01"],"id":7}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":7,"result":{"name":"database","disponibility":1.0}}`, body)
	// 1.0 must stay a real on the wire
	assert.Contains(t, body, `"disponibility":1.0`)
}

func TestRPC_ResultObjectParams(t *testing.T) {
	_, body := post(t, newTestServer(),
		`{"jsonrpc":"2.0","method":"get_disponibility","params":{"start_date":"a","end_date":"b"},"id":"x"}`)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":"x","result":{"name":"database","disponibility":1.0}}`, body)
}

func TestRPC_Errors(t *testing.T) {
	cases := []struct {
		name, in string
		id       any
		code     int
		msg      string
	}{
		{"parse", `{"jsonrpc":`, nil, -32700, "Parse error"},
		{"trailing bracket", `{"jsonrpc":"2.0","method":"get_disponibility","params":["a","b"],"id":1}]`, nil, -32700, "Parse error"},
		{"trailing brace", `{"jsonrpc":"2.0","method":"get_disponibility","params":["a","b"],"id":1}}`, nil, -32700, "Parse error"},
		{"trailing value", `{"jsonrpc":"2.0","method":"get_disponibility","params":["a","b"],"id":1} 5`, nil, -32700, "Parse error"},
		{"batch", `[{"jsonrpc":"2.0","method":"get_disponibility","id":1}]`, nil, -32088, "JSON-RPC batch requests not supported"},
		{"root", `"hello"`, nil, -32600, "Invalid request: Request's root is not a JSON object"},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, nil, -32600, "Invalid request: Request is missing mandatory attributes"},
		{"notification", `{"jsonrpc":"2.0","method":"get_disponibility","params":["a","b"]}`, nil, -32089, "JSON-RPC notifications not supported"},
		{"version", `{"jsonrpc":"1.0","method":"get_disponibility","params":["a","b"],"id":1}`, float64(1), -32600, "Invalid request: Invalid version number: 1.0"},
		{"method", `{"jsonrpc":"2.0","method":"shutdown","id":2}`, float64(2), -32601, "Method 'shutdown' not found"},
		{"no params", `{"jsonrpc":"2.0","method":"get_disponibility","id":3}`, float64(3), -32602, `Invalid parameters: Params are required for "get_disponibility"`},
		{"short array", `{"jsonrpc":"2.0","method":"get_disponibility","params":["a"],"id":3}`, float64(3), -32602, "Invalid parameters: Array params must contain two values"},
		{"array types", `{"jsonrpc":"2.0","method":"get_disponibility","params":["a",1],"id":3}`, float64(3), -32602, "Invalid parameters: Array params must be string values"},
		{"missing key", `{"jsonrpc":"2.0","method":"get_disponibility","params":{"start_date":"a"},"id":3}`, float64(3), -32602, `Invalid parameters: Missing key params "start_date" or "end_date"`},
		{"object types", `{"jsonrpc":"2.0","method":"get_disponibility","params":{"start_date":"a","end_date":false},"id":3}`, float64(3), -32602, "Invalid parameters: Object params must be string values"},
		{"scalar params", `{"jsonrpc":"2.0","method":"get_disponibility","params":5,"id":3}`, float64(3), -32602, "Invalid parameters: Params must be an array or object"},
	}
	h := newTestServer()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, body := post(t, h, c.in)
			assert.Equal(t, http.StatusOK, code)

			var resp struct {
				JSONRPC string              `json:"jsonrpc"`
				ID      any                 `json:"id"`
				Error   jsonrpc.ErrorObject `json:"error"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &resp), body)
			assert.Equal(t, "2.0", resp.JSONRPC)
			assert.Equal(t, c.id, resp.ID)
			assert.Equal(t, c.code, resp.Error.Code)
			assert.Equal(t, c.msg, resp.Error.Message)
		})
	}
}

type panicky struct{}

func (panicky) Availability() float64 { panic("sensor offline") }

func TestRPC_PanicBecomesInternalError(t *testing.T) {
	h := NewServer(zap.NewNop(), "app", panicky{}, 0, 0).Router()
	_, body := post(t, h, `{"jsonrpc":"2.0","method":"get_disponibility","params":["a","b"],"id":4}`)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":4,"error":{"code":-32099,"message":"Internal server error: sensor offline"}}`, body)
}

func TestRPC_RateLimited(t *testing.T) {
	h := NewServer(zap.NewNop(), "app", Fixed(0.5), 1, 1).Router()
	req := `{"jsonrpc":"2.0","method":"get_disponibility","params":["a","b"],"id":1}`

	code, _ := post(t, h, req)
	assert.Equal(t, http.StatusOK, code)
	code, body := post(t, h, req)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Contains(t, body, `"code":-32000`)
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestServer().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestNormalSource_Bounds(t *testing.T) {
	src := NewNormalSource(0.95, 0.2, 42)
	for i := 0; i < 1000; i++ {
		v := src.Availability()
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}

	wide := NewNormalSource(0, 5, 7)
	for i := 0; i < 1000; i++ {
		require.GreaterOrEqual(t, wide.Availability(), 0.0)
	}
}

func TestNormalSource_Deterministic(t *testing.T) {
	a := NewNormalSource(0.95, 0.2, 99)
	b := NewNormalSource(0.95, 0.2, 99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Availability(), b.Availability())
	}
}

func TestRPC_RequiresKeyWhenConfigured(t *testing.T) {
	s := NewServer(zap.NewNop(), "app", Fixed(0.5), 0, 0)
	s.APIKeys = []string{"secret"}
	h := s.Router()
	req := `{"jsonrpc":"2.0","method":"get_disponibility","params":["a","b"],"id":1}`

	code, body := post(t, h, req)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, body, `"code":-32001`)

	r := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(req))
	r.Header.Set("Authorization", "Bearer secret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":{"name":"app","disponibility":0.5}}`, rr.Body.String())
}

func TestRPC_OversizedBodyRejected(t *testing.T) {
	pad := strings.Repeat(" ", maxRequestBytes)
	code, body := post(t, newTestServer(),
		`{"jsonrpc":"2.0","method":"get_disponibility","params":["a","b"],"id":1}`+pad)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":null,"error":{"code":-32600,"message":"Invalid request: Request body too large"}}`, body)
}

func TestDecodeDocument_AcceptsTrailingWhitespace(t *testing.T) {
	doc, err := decodeDocument([]byte("{\"a\":1}\n\t "))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": json.Number("1")}, doc)
}
