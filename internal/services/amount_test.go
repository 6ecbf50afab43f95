package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakehub-io/stakehub-client/internal/types"
)

func TestParseLamports(t *testing.T) {
	t.Run("valid decimal amounts", func(t *testing.T) {
		tests := []struct {
			raw      string
			expected uint64
		}{
			{"2.5", 2_500_000_000},
			{"0.0001", 100_000},
			{"1", 1_000_000_000},
			{" 3.25 ", 3_250_000_000},
		}
		for _, tt := range tests {
			t.Run(tt.raw, func(t *testing.T) {
				lamports, err := parseLamports(tt.raw)
				require.Nil(t, err)
				assert.Equal(t, tt.expected, lamports)
			})
		}
	})

	t.Run("rejected amounts", func(t *testing.T) {
		tests := []string{
			"0",
			"-5",
			"abc",
			"",
			"0.0000000001", // truncates to zero lamports
			"10000000000",  // beyond the cap
		}
		for _, raw := range tests {
			t.Run(raw, func(t *testing.T) {
				_, err := parseLamports(raw)
				require.NotNil(t, err)
				assert.Equal(t, types.InvalidAmount, err.ErrorCode)
			})
		}
	})
}

func TestFormatLamports(t *testing.T) {
	assert.Equal(t, "2.5000", formatLamports(2_500_000_000))
	assert.Equal(t, "0.0000", formatLamports(0))
	assert.Equal(t, "0.1234", formatLamports(123_456_789))
	assert.Equal(t, "1.0000", formatLamports(1_000_000_000))
	assert.Equal(t, "0.0000", formatLamports(99_999)) // below display precision
}
