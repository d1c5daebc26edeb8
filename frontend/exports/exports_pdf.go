package exports

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"logidash/frontend/stock"
	"logidash/infrastructure/sheetrow"
)

const pickSheetRowsPerPage = 6

// renderPickSheetPDF lays out expiring pallets, six per A4 page, each with a
// Code128 barcode of its pallet id so pickers can scan it at the location.
func renderPickSheetPDF(rows []stock.DangerRow, tenant string, printedAt time.Time) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no danger pallets to render")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Danger Stock Pick Sheet", false)
	pdf.SetAutoPageBreak(false, 0)

	pageW, pageH := pdf.GetPageSize()
	margin := 10.0
	headerH := 22.0
	rowH := (pageH - 2*margin - headerH) / pickSheetRowsPerPage
	contentW := pageW - 2*margin

	title := "DANGER STOCK PICK SHEET"
	if t := strings.TrimSpace(tenant); t != "" {
		title = strings.ToUpper(t) + " - " + title
	}
	pages := (len(rows) + pickSheetRowsPerPage - 1) / pickSheetRowsPerPage

	for i, row := range rows {
		slot := i % pickSheetRowsPerPage
		if slot == 0 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", fitFontSizeForWidth(pdf, "Helvetica", "B", 18, 11, title, contentW-50))
			pdf.SetXY(margin, margin)
			pdf.CellFormat(contentW-50, 10, title, "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetXY(margin+contentW-50, margin)
			pdf.CellFormat(50, 5, "Printed: "+printedAt.Format("02/01/2006 15:04"), "", 0, "R", false, 0, "")
			pdf.SetXY(margin+contentW-50, margin+5)
			pdf.CellFormat(50, 5, fmt.Sprintf("Page %d of %d", i/pickSheetRowsPerPage+1, pages), "", 0, "R", false, 0, "")
			pdf.SetLineWidth(0.5)
			pdf.Line(margin, margin+headerH-4, margin+contentW, margin+headerH-4)
		}
		if err := addPickSheetRow(pdf, row, i, margin, margin+headerH+float64(slot)*rowH, contentW, rowH); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func addPickSheetRow(pdf *gofpdf.Fpdf, row stock.DangerRow, index int, x0, y0, w0, h0 float64) error {
	pdf.SetLineWidth(0.3)
	pdf.Rect(x0, y0, w0, h0-2, "")

	leftW := w0 * 0.55
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(x0+2, y0+2)
	pdf.CellFormat(leftW-4, 5, "LOCATION", "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	location := orDash(row.Location)
	pdf.SetFont("Helvetica", "B", fitFontSizeForWidth(pdf, "Helvetica", "B", 22, 12, location, leftW-6))
	pdf.SetXY(x0+3, y0+7)
	pdf.CellFormat(leftW-6, 10, location, "", 0, "L", false, 0, "")

	sku := orDash(row.SKUID)
	desc := orDash(row.Description)
	pdf.SetFont("Helvetica", "B", fitFontSizeForWidth(pdf, "Helvetica", "B", 12, 8, sku, leftW-6))
	pdf.SetXY(x0+3, y0+18)
	pdf.CellFormat(leftW-6, 6, sku, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", fitFontSizeForWidth(pdf, "Helvetica", "", 10, 6.5, desc, leftW-6))
	pdf.SetXY(x0+3, y0+24)
	pdf.CellFormat(leftW-6, 5, desc, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(x0+3, y0+h0-10)
	details := fmt.Sprintf("Expiry %s  |  %s days  |  Free Qty %s  |  GRN %s",
		orDash(row.ExpiryDate), row.DaysLeft, sheetrow.FormatQty(row.FreeQty), orDash(row.GRNID))
	pdf.SetFont("Helvetica", "", fitFontSizeForWidth(pdf, "Helvetica", "", 9, 6, details, w0-6))
	pdf.CellFormat(w0-6, 5, details, "", 0, "L", false, 0, "")

	value := strings.TrimSpace(row.PalletID)
	if value == "" {
		return nil
	}
	barcodePNG, err := renderCode128PNG(value, 900, 200)
	if err != nil {
		return fmt.Errorf("barcode for pallet %s: %w", value, err)
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := fmt.Sprintf("pick-barcode-%d", index)
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
	barcodeW := w0 - leftW - 6
	barcodeH := h0 - 24
	if barcodeH < 10 {
		barcodeH = 10
	}
	pdf.ImageOptions(imageName, x0+leftW+2, y0+3, barcodeW, barcodeH, false, opt, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(x0+leftW+2, y0+3+barcodeH)
	pdf.CellFormat(barcodeW, 5, value, "", 0, "C", false, 0, "")
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func fitFontSizeForWidth(pdf *gofpdf.Fpdf, family, style string, base, min float64, text string, maxWidth float64) float64 {
	if maxWidth <= 0 {
		return min
	}
	size := base
	pdf.SetFont(family, style, size)
	for size > min && pdf.GetStringWidth(text) > maxWidth {
		size -= 0.5
		pdf.SetFont(family, style, size)
	}
	return size
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := png.Encode(&out, toNRGBA(scaled)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
