package verify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDescriptor_Validate(t *testing.T) {
	valid := Descriptor{
		Name:            "valid",
		Algorithm:       AlgorithmHMACSHA256,
		Encoding:        EncodingHex,
		SignatureHeader: "X-Sig",
	}

	t.Run("valid descriptor", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*Descriptor)
		errMsg string
	}{
		{
			"missing name",
			func(d *Descriptor) { d.Name = "" },
			"name",
		},
		{
			"missing signature header",
			func(d *Descriptor) { d.SignatureHeader = "" },
			"signature header",
		},
		{
			"unknown algorithm",
			func(d *Descriptor) { d.Algorithm = "md5" },
			"unsupported algorithm",
		},
		{
			"unknown encoding",
			func(d *Descriptor) { d.Encoding = "base32" },
			"unsupported encoding",
		},
		{
			"multi-signature without separator",
			func(d *Descriptor) { d.MultiSignature = &MultiSignature{EntryPrefix: "v1="} },
			"separator",
		},
		{
			"timestamp scheme with neither source",
			func(d *Descriptor) { d.Timestamp = &TimestampScheme{} },
			"timestamp scheme",
		},
		{
			"timestamp scheme with both sources",
			func(d *Descriptor) { d.Timestamp = &TimestampScheme{Header: "X-Ts", SignatureKey: "t"} },
			"timestamp scheme",
		},
		{
			"timestamp template without timestamp scheme",
			func(d *Descriptor) { d.Template = []TemplatePart{TimestampRef()} },
			"no timestamp scheme",
		},
		{
			"header template part without a name",
			func(d *Descriptor) { d.Template = []TemplatePart{HeaderRef("")} },
			"header name",
		},
		{
			"negative tolerance",
			func(d *Descriptor) { d.Tolerance = -time.Second },
			"tolerance",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := valid
			tc.mutate(&d)

			err := d.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestDescriptor_Strategy(t *testing.T) {
	assert.Equal(t, StrategyMAC, Descriptor{Algorithm: AlgorithmHMACSHA256}.Strategy())
	assert.Equal(t, StrategyMAC, Descriptor{Algorithm: AlgorithmHMACSHA1}.Strategy())
	assert.Equal(t, StrategyPublicKey, Descriptor{Algorithm: AlgorithmEd25519}.Strategy())
	assert.Equal(t, StrategyPublicKey, Descriptor{Algorithm: AlgorithmECDSAP256}.Strategy())
}

func TestDescriptor_Tolerance(t *testing.T) {
	assert.Equal(t, DefaultTolerance, Descriptor{}.tolerance())
	assert.Equal(t, time.Minute, Descriptor{Tolerance: time.Minute}.tolerance())
}
