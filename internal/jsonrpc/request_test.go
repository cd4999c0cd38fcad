package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest_SetsVersionAndFields(t *testing.T) {
	req := BuildRequest(MethodGetDisponibility, []string{"2016-01-01", "2016-02-01"}, 3)

	assert.Equal(t, "2.0", req.JSONRPC)
	assert.Equal(t, "get_disponibility", req.Method)
	assert.Equal(t, []string{"2016-01-01", "2016-02-01"}, req.Params)
	assert.Equal(t, 3, req.ID)
}

func TestBuildRequest_CopiesParams(t *testing.T) {
	params := []string{"a", "b"}
	req := BuildRequest("m", params, 1)
	params[0] = "changed"
	assert.Equal(t, "a", req.Params[0])
}

func TestBuildRequest_EmptyMethodPanics(t *testing.T) {
	assert.Panics(t, func() { BuildRequest("", nil, 1) })
}

func TestRequest_RoundTrip(t *testing.T) {
	want := BuildRequest("get_disponibility", []string{"2016-01-01", "2016-02-01"}, 7)

	data, err := want.Encode()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"jsonrpc":"2.0","method":"get_disponibility","params":["2016-01-01","2016-02-01"],"id":7}`,
		string(data))

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Len(t, fields, 4)

	got, err := DecodeRequest(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRequest_EncodeOmitsEmptyParams(t *testing.T) {
	data, err := BuildRequest("ping", nil, 1).Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","method":"ping","id":1}`, string(data))

	data, err = BuildRequest("ping", []string{}, 2).Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "params")
}

func TestDecodeRequest_Rejects(t *testing.T) {
	cases := map[string]string{
		"wrong version":  `{"jsonrpc":"1.0","method":"m","id":1}`,
		"unknown field":  `{"jsonrpc":"2.0","method":"m","id":1,"extra":true}`,
		"missing method": `{"jsonrpc":"2.0","id":1}`,
		"not json":       `nope`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRequest([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestIDSequence_StartsAtOneAndIncreases(t *testing.T) {
	var seq IDSequence
	assert.Equal(t, 1, seq.Next())
	assert.Equal(t, 2, seq.Next())
	assert.Equal(t, 3, seq.Next())
}
