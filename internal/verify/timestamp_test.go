package verify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTimestamp(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tolerance := 5 * time.Minute

	cases := []struct {
		name   string
		raw    string
		reason Reason
	}{
		{"current", "1700000000", ""},
		{"within window past", "1699999900", ""},
		{"within window future", "1700000100", ""},
		{"boundary past", "1699999700", ""},
		{"boundary future", "1700000300", ""},
		{"past boundary plus one", "1699999699", ReasonTimestampOutOfTolerance},
		{"future boundary plus one", "1700000301", ReasonTimestampOutOfTolerance},
		{"empty", "", ReasonInvalidEncoding},
		{"float", "1700000000.5", ReasonInvalidEncoding},
		{"words", "now", ReasonInvalidEncoding},
		{"negative", "-1", ReasonInvalidEncoding},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTimestamp(tc.raw, tolerance, now)
			if tc.reason == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tc.reason, ReasonOf(err))
			}
		})
	}
}

func TestExtractTimestamp(t *testing.T) {
	t.Run("dedicated header", func(t *testing.T) {
		d := Descriptor{
			SignatureHeader: "X-Sig",
			Timestamp:       &TimestampScheme{Header: "X-Ts"},
		}
		headers := NewHeaders(map[string]string{"X-Ts": "1700000000"})

		value, err := extractTimestamp(d, headers)
		require.NoError(t, err)
		assert.Equal(t, "1700000000", value)
	})

	t.Run("dedicated header missing", func(t *testing.T) {
		d := Descriptor{
			SignatureHeader: "X-Sig",
			Timestamp:       &TimestampScheme{Header: "X-Ts"},
		}

		_, err := extractTimestamp(d, NewHeaders(nil))
		require.Error(t, err)
		assert.True(t, IsReason(err, ReasonMissingHeader))
	})

	t.Run("keyed entry in signature header", func(t *testing.T) {
		d := Descriptor{
			SignatureHeader: "X-Sig",
			MultiSignature:  &MultiSignature{Separator: ",", EntryPrefix: "v1="},
			Timestamp:       &TimestampScheme{SignatureKey: "t"},
		}
		headers := NewHeaders(map[string]string{"X-Sig": "t=1700000000,v1=abcd"})

		value, err := extractTimestamp(d, headers)
		require.NoError(t, err)
		assert.Equal(t, "1700000000", value)
	})

	t.Run("keyed entry absent", func(t *testing.T) {
		d := Descriptor{
			SignatureHeader: "X-Sig",
			MultiSignature:  &MultiSignature{Separator: ",", EntryPrefix: "v1="},
			Timestamp:       &TimestampScheme{SignatureKey: "t"},
		}
		headers := NewHeaders(map[string]string{"X-Sig": "v1=abcd"})

		_, err := extractTimestamp(d, headers)
		require.Error(t, err)
		assert.True(t, IsReason(err, ReasonMissingHeader))
	})
}
