package services

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	badgeWidth  = 700
	badgeHeight = 450
	qrSize      = 160
)

// renderBadgePNG draws the badge card: title and field lines on a dark navy
// background, with a QR code linking to the public verification endpoint.
func renderBadgePNG(info badgeInfo) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, badgeWidth, badgeHeight))
	background := color.RGBA{R: 0x0B, G: 0x1C, B: 0x2D, A: 0xFF}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	drawLine(img, 40, 50, "Nation Builder Badge")
	drawLine(img, 40, 130, "Badge: "+info.BadgeName)
	drawLine(img, 40, 180, "Financial Year: "+info.FinancialYear)
	drawLine(img, 40, 230, "Badge ID: "+info.BadgeID)
	drawLine(img, 40, 280, "Expires: "+info.ExpiryDate)

	qr, err := qrcode.New(info.VerifyURL, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrImg := qr.Image(qrSize)
	qrRect := image.Rect(480, 240, 480+qrSize, 240+qrSize)
	draw.Draw(img, qrRect, qrImg, qrImg.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawLine(img *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
