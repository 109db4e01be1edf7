package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/indicator-service/internal/domain"
)

type series struct {
	Values Floats  `json:"values"`
	Extra  *Floats `json:"extra,omitempty"`
}

func TestFloats_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Floats
		wantErr string
	}{
		{"numbers", `{"values":[1,2.5,-3]}`, Floats{1, 2.5, -3}, ""},
		{"empty array", `{"values":[]}`, Floats{}, ""},
		{"null array", `{"values":null}`, nil, ""},
		{"null element", `{"values":[0.012,null,-0.018]}`, nil, "array element 1 is null; values must be numbers"},
		{"leading null", `{"values":[null]}`, nil, "array element 0 is null; values must be numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got series
			err := json.Unmarshal([]byte(tt.body), &got)
			if tt.wantErr != "" {
				var invalid *domain.InvalidInputError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.wantErr, invalid.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Values)
		})
	}
}

func TestFloats_PointerField(t *testing.T) {
	var got series
	require.NoError(t, json.Unmarshal([]byte(`{"values":[1],"extra":[4,5]}`), &got))
	require.NotNil(t, got.Extra)
	assert.Equal(t, Floats{4, 5}, *got.Extra)

	got = series{}
	require.NoError(t, json.Unmarshal([]byte(`{"values":[1]}`), &got))
	assert.Nil(t, got.Extra)

	err := json.Unmarshal([]byte(`{"values":[1],"extra":[4,null]}`), &got)
	assert.True(t, domain.IsClientError(err))
}

func TestFloats_DecodeMsgpack(t *testing.T) {
	tests := []struct {
		name    string
		values  []any
		want    Floats
		wantErr bool
	}{
		{"numbers", []any{1.5, 2, -3.25}, Floats{1.5, 2, -3.25}, false},
		{"null element", []any{100.0, nil, 120.0}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := msgpack.Marshal(map[string]any{"values": tt.values})
			require.NoError(t, err)

			dec := msgpack.NewDecoder(bytes.NewReader(body))
			dec.SetCustomStructTag("json")
			var got series
			err = dec.Decode(&got)
			if tt.wantErr {
				assert.True(t, domain.IsClientError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Values)
		})
	}
}

func TestDecode_NullElementIsRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"values":[100,null,120]}`))

	var got series
	err := Decode(httptest.NewRecorder(), req, &got, 0)

	var invalid *domain.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, http.StatusBadRequest, StatusFor(err))
	assert.Equal(t, "array element 1 is null; values must be numbers", err.Error())
}
