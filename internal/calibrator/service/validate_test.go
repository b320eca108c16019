package service

import (
	"testing"

	"github.com/langowen/calibrator/internal/entities"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in      string
		want    entities.CurrencyCode
		wantErr bool
	}{
		{in: "usd ", want: "USD"},
		{in: "  eUr", want: "EUR"},
		{in: "INR", want: "INR"},
		{in: "US", wantErr: true},
		{in: "US1", wantErr: true},
		{in: "USDT", wantErr: true},
		{in: "", wantErr: true},
		{in: "U D", wantErr: true},
		{in: "ÜSD", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeCode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, entities.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount(" 100 ")
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	v, err = ParseAmount("-12.5")
	require.NoError(t, err)
	assert.Equal(t, -12.5, v)

	v, err = ParseAmount("0")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	for _, bad := range []string{"", "abc", "12,5", "NaN", "1..2", "1e400", "-1e400"} {
		_, err := ParseAmount(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, entities.ErrValidation), bad)
	}
}

func TestParseDays(t *testing.T) {
	days, err := ParseDays("", DefaultDays, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, days)

	days, err = ParseDays("  ", DefaultDays, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, days)

	days, err = ParseDays("7", DefaultDays, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, days)

	for _, bad := range []string{"0", "-5", "1.5", "ten"} {
		_, err := ParseDays(bad, DefaultDays, 0)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, entities.ErrValidation), bad)
	}

	_, err = ParseDays("400", DefaultDays, 365)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrValidation))
}
