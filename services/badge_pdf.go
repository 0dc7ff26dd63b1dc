package services

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// renderBadgePDF produces the A4 certificate for an issued badge.
func renderBadgePDF(info badgeInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(0, 60)
	pdf.CellFormat(595, 26, "Nation Builder Badge", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 13)
	lines := []string{
		"Badge Tier: " + info.BadgeName,
		"Badge ID: " + info.BadgeID,
		"Financial Year: " + info.FinancialYear,
		"Generated On: " + info.GeneratedDate,
		"Expires On: " + info.ExpiryDate,
		"Awarded To: " + info.OwnerName,
	}
	y := 130.0
	for _, line := range lines {
		pdf.SetXY(70, y)
		pdf.Cell(450, 16, line)
		y += 25
	}

	pdf.SetFont("Helvetica", "I", 12)
	pdf.SetXY(70, y+25)
	pdf.Cell(450, 16, "Thank you for nation building through your tax contribution.")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(70, y+65)
	pdf.Cell(450, 16, "Verify this badge: "+info.VerifyURL)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
