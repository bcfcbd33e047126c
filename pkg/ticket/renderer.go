package ticket

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

// card layout
const (
	cardWidth   = 480
	cardHeight  = 640
	cardPadding = 40
	eventTitle  = "BATCH PARTY 2026"
)

// RenderCard composes the shareable ticket card: event title, attendee name,
// derived display code and the QR image on a white card. Rendering is fully
// synchronous, the returned PNG is complete when the function returns - there
// is no separate "QR finished drawing" signal to wait for.
func RenderCard(participant regTypes.Participant, id string) ([]byte, error) {
	qrPNG, err := EncodeQR(Payload{
		ID:     id,
		Name:   participant.Name,
		Batch:  participant.Batch,
		Status: participant.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR: %w", err)
	}

	qrImg, err := png.Decode(bytes.NewReader(qrPNG))
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR image: %w", err)
	}

	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)

	centerX := float64(cardWidth) / 2
	dc.DrawStringAnchored(eventTitle, centerX, cardPadding+10, 0.5, 0.5)
	dc.DrawStringAnchored(participant.Name, centerX, cardPadding+40, 0.5, 0.5)
	dc.DrawStringAnchored("Batch "+participant.Batch, centerX, cardPadding+60, 0.5, 0.5)

	qrX := (cardWidth - QRSize) / 2
	qrY := cardPadding + 90
	dc.DrawImage(qrImg, qrX, qrY)

	dc.DrawStringAnchored(regTypes.DisplayCode(id), centerX, float64(qrY+QRSize+40), 0.5, 0.5)
	dc.DrawStringAnchored("Show this QR at the entrance", centerX, float64(qrY+QRSize+65), 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode ticket card: %w", err)
	}
	return buf.Bytes(), nil
}
