package ticket

import (
	"bytes"
	"image/png"
	"testing"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

func TestQRRoundTrip(t *testing.T) {
	p := Payload{ID: "65f1a2b3c4d5e6f708091011", Name: "Alice", Batch: "B1", Status: "verified"}

	qrPNG, err := EncodeQR(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(qrPNG))
	if err != nil {
		t.Fatalf("QR output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != QRSize || img.Bounds().Dy() != QRSize {
		t.Errorf("expected %dx%d QR image, got %dx%d", QRSize, QRSize, img.Bounds().Dx(), img.Bounds().Dy())
	}

	text, err := DecodeImage(img)
	if err != nil {
		t.Fatalf("failed to decode generated QR: %v", err)
	}

	decoded, err := DecodePayload(text)
	if err != nil {
		t.Fatalf("decoded text is not a valid payload: %v", err)
	}
	if decoded != p {
		t.Errorf("round trip mismatch: expected %+v, got %+v", p, decoded)
	}
}

func TestRenderCard(t *testing.T) {
	participant := regTypes.Participant{
		Name:   "Alice",
		Batch:  "B1",
		Status: regTypes.PARTICIPANT_STATUS_VERIFIED,
	}

	cardPNG, err := RenderCard(participant, "65f1a2b3c4d5e6f708091011")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(cardPNG))
	if err != nil {
		t.Fatalf("card output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("card image is empty")
	}
}
