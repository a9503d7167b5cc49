package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortalLink(t *testing.T) {
	link, err := PortalLink("https://tanya.example.sch.id/portal", "X-IPA-1")
	require.NoError(t, err)
	assert.Equal(t, "https://tanya.example.sch.id/portal?class=X-IPA-1", link)

	link, err = PortalLink("https://tanya.example.sch.id/", "")
	require.NoError(t, err)
	assert.Equal(t, "https://tanya.example.sch.id/", link)

	_, err = PortalLink("not a url", "X-IPA-1")
	assert.Error(t, err)
}

func TestGeneratePortalQRCode(t *testing.T) {
	png, err := GeneratePortalQRCode("http://localhost:5173/", "XI IPS 2", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}
