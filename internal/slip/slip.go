package slip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xelth-com/hostelprintgo/internal/models"
)

// ReferenceQR encodes the reference id as a PNG QR code for the
// confirmation page and the print desk scanner.
func ReferenceQR(reference string) ([]byte, error) {
	png, err := qrcode.Encode(reference, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode reference QR: %w", err)
	}
	return png, nil
}

// Generate renders a printable A4 confirmation slip: requester details, the
// document list and a QR code of the reference id.
func Generate(req *models.PrintRequest) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Hostel Printing Request - Confirmation Slip", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Reference: %s", req.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Name: %s", req.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Phone: %s", req.Phone), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Hostel %s, Room %s", req.HostelNo, req.RoomNo), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Submitted: %s", req.CreatedAt.Format("02 Jan 2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Documents", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for i, ref := range req.DocumentList() {
		pdf.CellFormat(0, 6, fmt.Sprintf("%d. %s (%s)", i+1, ref.OriginalName, ref.MimeType), "", 1, "L", false, 0, "")
	}

	// QR of the reference in the top-right corner
	qrPng, err := ReferenceQR(req.ID)
	if err != nil {
		return nil, err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("reference_qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("reference_qr", 150, 20, 40, 40, false, opts, 0, "")

	pdf.SetY(-40)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Show this slip or the QR code at the print desk to collect your documents.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render slip PDF: %w", err)
	}
	return buf.Bytes(), nil
}
