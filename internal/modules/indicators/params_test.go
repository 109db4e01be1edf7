package indicators

import (
	"math"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Float(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		want    float64
		wantErr bool
	}{
		{"absent uses default", Params{}, 2.0, false},
		{"nil uses default", Params{"x": nil}, 2.0, false},
		{"float64", Params{"x": 1.5}, 1.5, false},
		{"int", Params{"x": 3}, 3, false},
		{"int8 from msgpack", Params{"x": int8(7)}, 7, false},
		{"uint16 from msgpack", Params{"x": uint16(9)}, 9, false},
		{"numeric string", Params{"x": " 2.5 "}, 2.5, false},
		{"garbage string", Params{"x": "two"}, 0, true},
		{"bool", Params{"x": true}, 0, true},
		{"nan string", Params{"x": "NaN"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.Float("x", 2.0)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_PeriodTruncatesAndValidates(t *testing.T) {
	p := Params{"period": 14.9, "small": 1}

	v, err := p.Period("period", 20, 2)
	require.NoError(t, err)
	assert.Equal(t, 14, v)

	_, err = p.Period("small", 20, 2)
	assert.Error(t, err)

	v, err = p.Period("missing", 20, 2)
	require.NoError(t, err)
	assert.Equal(t, 20, v)
}

func TestParams_Bool(t *testing.T) {
	tests := []struct {
		raw     any
		want    bool
		wantErr bool
	}{
		{true, true, false},
		{false, false, false},
		{"true", true, false},
		{"TRUE", true, false},
		{"false", false, false},
		{"yes", false, false},
		{1, false, true},
	}

	for _, tt := range tests {
		got, err := Params{"annualize": tt.raw}.Bool("annualize", true)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.raw)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v", tt.raw)
	}

	got, err := Params{}.Bool("annualize", true)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestMALookback(t *testing.T) {
	assert.Equal(t, 19, maLookback(20, talib.SMA))
	assert.Equal(t, 19, maLookback(20, talib.EMA))
	assert.Equal(t, 38, maLookback(20, talib.DEMA))
	assert.Equal(t, 57, maLookback(20, talib.TEMA))
	assert.Equal(t, 20, maLookback(20, talib.KAMA))
	assert.Equal(t, 0, maLookback(1, talib.T3MA))
}

func TestRunTalib(t *testing.T) {
	t.Run("short input skips kernel", func(t *testing.T) {
		called := false
		out, err := runTalib("X", 3, 3, func() []float64 {
			called = true
			return nil
		})
		require.NoError(t, err)
		assert.False(t, called)
		require.Len(t, out, 3)
		for _, v := range out {
			assert.True(t, math.IsNaN(v))
		}
	})

	t.Run("masks warm-up", func(t *testing.T) {
		out, err := runTalib("X", 4, 2, func() []float64 { return []float64{0, 0, 5, 6} })
		require.NoError(t, err)
		assert.True(t, math.IsNaN(out[0]))
		assert.True(t, math.IsNaN(out[1]))
		assert.Equal(t, []float64{5, 6}, out[2:])
	})

	t.Run("panic becomes invalid input", func(t *testing.T) {
		out, err := runTalib("X", 4, 0, func() []float64 { panic("index out of range") })
		assert.Nil(t, out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calculation failed")
	})
}

func TestSubtract(t *testing.T) {
	out := subtract([]float64{3, math.NaN(), 5}, []float64{1, 1, math.NaN()})
	assert.Equal(t, 2.0, out[0])
	assert.True(t, math.IsNaN(out[1]))
	assert.True(t, math.IsNaN(out[2]))
}
