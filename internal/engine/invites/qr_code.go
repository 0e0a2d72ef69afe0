package invites

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

// GenerateQRCode renders the public invitation link as a PNG, sized for print
// inside physical invitation cards.
func GenerateQRCode(invitationLink string, size int) ([]byte, error) {
	// Default size
	if size == 0 {
		size = 512
	}

	if size < 128 || size > 2048 {
		return nil, errors.New("invalid size: must be between 128 and 2048")
	}

	qr, err := qrcode.New(invitationLink, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	qr.DisableBorder = false

	return qr.PNG(size)
}
