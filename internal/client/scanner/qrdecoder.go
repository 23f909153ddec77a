package scanner

import (
	"image"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// QRFrameDecoder is the default FrameDecoder, backed by the gozxing port of
// the ZXing QR reader. A frame with no readable symbol produces an empty
// slice; decoder errors are never surfaced.
type QRFrameDecoder struct {
	reader gozxing.Reader
	now    func() time.Time
}

func NewQRFrameDecoder() *QRFrameDecoder {
	return &QRFrameDecoder{reader: qrcode.NewQRCodeReader(), now: time.Now}
}

func (d *QRFrameDecoder) Decode(img image.Image) []Reading {
	if img == nil {
		return nil
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil
	}

	result, err := d.reader.Decode(bmp, nil)
	if err != nil || result == nil {
		return nil
	}

	return []Reading{{Data: result.GetText(), At: d.now()}}
}
