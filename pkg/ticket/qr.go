package ticket

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"
)

// QRSize is the fixed pixel edge length of generated QR images.
const QRSize = 360

// EncodeQR renders the payload as a PNG QR image with the highest error
// correction level, so tickets survive being photographed off a phone screen.
func EncodeQR(p Payload) ([]byte, error) {
	text, err := p.Encode()
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(text, qrcode.Highest, QRSize)
}

// DecodeImage extracts the QR text from a captured camera frame. Frames
// without a readable QR code yield ErrInvalidPayload.
func DecodeImage(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", ErrInvalidPayload
	}

	reader := zxqrcode.NewQRCodeReader()
	result, err := reader.Decode(bmp, nil)
	if err != nil {
		return "", ErrInvalidPayload
	}
	return result.GetText(), nil
}
