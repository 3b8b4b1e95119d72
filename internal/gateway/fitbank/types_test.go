package fitbank

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeSuccessCoercion(t *testing.T) {
	cases := []struct {
		name string
		body string
		want bool
	}{
		{"boolean true", `{"Success": true}`, true},
		{"string true", `{"Success": "true"}`, true},
		{"string true uppercase", `{"Success": "TRUE"}`, true},
		{"boolean false", `{"Success": false}`, false},
		{"string false", `{"Success": "false"}`, false},
		{"absent", `{}`, false},
		{"null", `{"Success": null}`, false},
		{"garbage", `{"Success": "maybe"}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var env envelope
			require.NoError(t, json.Unmarshal([]byte(tc.body), &env))
			assert.Equal(t, tc.want, bool(env.Success))
		})
	}
}

func TestEnvelopeAmountCoercion(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"number", `{"Balance": 1234.56}`, "1234.56"},
		{"numeric string", `{"Balance": "1234.56"}`, "1234.56"},
		{"null", `{"Balance": null}`, "0"},
		{"absent", `{}`, "0"},
		{"garbage", `{"Balance": "R$ 100"}`, "0"},
		{"negative", `{"Balance": "-42.10"}`, "-42.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var env envelope
			require.NoError(t, json.Unmarshal([]byte(tc.body), &env))
			assert.Equal(t, tc.want, env.Balance.String())
		})
	}
}

func TestEnvelopeFlexStringCoercion(t *testing.T) {
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(`{"DocumentNumber": 987654, "ErrorCode": "E042"}`), &env))
	assert.Equal(t, "987654", string(env.DocumentNumber))
	assert.Equal(t, "E042", string(env.ErrorCode))

	require.NoError(t, json.Unmarshal([]byte(`{"DocumentNumber": null}`), &env))
	assert.Equal(t, "", string(env.DocumentNumber))
}
