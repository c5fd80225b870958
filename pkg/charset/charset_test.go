package charset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"

	"github.com/agentstation/leadmerge/pkg/charset"
	pkgerrors "github.com/agentstation/leadmerge/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", charset.UTF8},
		{"UTF8", charset.UTF8},
		{" GBK ", charset.GBK},
		{"cp936", charset.GBK},
		{"gb18030", charset.GB18030},
		{"utf-8-bom", charset.UTF8BOM},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := charset.Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := charset.Normalize("latin-9")
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestRoundTripGBK(t *testing.T) {
	enc, err := charset.Encoder(charset.GBK)
	require.NoError(t, err)
	encoded, _, err := transform.String(enc, "酒店")
	require.NoError(t, err)
	assert.NotEqual(t, "酒店", encoded)

	dec, err := charset.Decoder(charset.GBK)
	require.NoError(t, err)
	decoded, _, err := transform.String(dec, encoded)
	require.NoError(t, err)
	assert.Equal(t, "酒店", decoded)
}

func TestDecoderDropsBOM(t *testing.T) {
	dec, err := charset.Decoder(charset.UTF8)
	require.NoError(t, err)
	got, _, err := transform.String(dec, "\xef\xbb\xbfname,phone")
	require.NoError(t, err)
	assert.Equal(t, "name,phone", got)
}

func TestEncoderWritesBOM(t *testing.T) {
	enc, err := charset.Encoder(charset.UTF8BOM)
	require.NoError(t, err)
	got, _, err := transform.String(enc, "a")
	require.NoError(t, err)
	assert.Equal(t, "\xef\xbb\xbfa", got)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"gb18030", "gbk", "utf-8", "utf-8-bom"}, charset.Names())
}
