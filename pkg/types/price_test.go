package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "25", want: 25},
		{in: "25.00", want: 25},
		{in: "$25.00", want: 25},
		{in: "$1,200.50", want: 1200.5},
		{in: "  $ 3.10 ", want: 3.1},
		{in: "0", want: 0},
		{in: "-0", want: 0},
		{in: "$-0.00", want: 0},
		{in: "abc", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "", wantErr: true},
		{in: "$,", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPrice)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.Signbit(got), "price must not be negative zero")
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$25.00", FormatPrice(25))
	assert.Equal(t, "$1200.50", FormatPrice(1200.5))
	assert.Equal(t, "$0.10", FormatPrice(0.1))

	zero, err := ParsePrice("-0")
	require.NoError(t, err)
	assert.Equal(t, "$0.00", FormatPrice(zero))
}

func TestListingString(t *testing.T) {
	l := &Listing{Name: "Chair", Category: "Furniture", Price: 25, Description: "Wooden chair"}
	assert.Equal(t, "Name: Chair, Category: Furniture, Price: $25.00, Description: Wooden chair", l.String())
}
