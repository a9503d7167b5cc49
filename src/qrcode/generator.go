package qrcode

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

// DefaultSize ขนาดภาพ (px) ที่ใช้เมื่อไม่ได้ระบุ
const DefaultSize = 256

// PortalLink สร้างลิงก์ portal ที่เลือก class ไว้ให้แล้ว (?class=X-IPA-1)
func PortalLink(base, className string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("invalid portal url %q", base)
	}
	if className != "" {
		q := u.Query()
		q.Set("class", className)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// GeneratePortalQRCode สร้าง QR Code (PNG) ของลิงก์ portal สำหรับพิมพ์แจกในห้องเรียน
func GeneratePortalQRCode(base, className string, size int) ([]byte, error) {
	link, err := PortalLink(base, className)
	if err != nil {
		return nil, err
	}
	if size <= 0 || size > 1024 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encode qr code")
	}
	return png, nil
}
