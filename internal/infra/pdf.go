package infra

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/lrplaceres/punto-venta/internal/dto"
)

// FacturaPDF renders a thermal receipt-style ticket for an invoice from
// its stored snapshot lines. Output is returned in memory so the handler
// can stream it without touching disk.
func FacturaPDF(factura *dto.FacturaDetail, lineas []dto.FacturaLinea) ([]byte, error) {
	// 74mm x 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(factura.NombrePunto), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tr("Comprobante de venta"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Factura N° %d", factura.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, factura.Fecha, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Item table: producto, cantidad, importe
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW*0.5, 4, tr("Producto"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.2, 4, tr("Cant."), "B", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.3, 4, tr("Importe"), "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, l := range lineas {
		pdf.CellFormat(contentW*0.5, 4, tr(l.Producto), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.2, 4, l.Cantidad.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.3, 4, l.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.6, 5, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 5, factura.Monto.StringFixed(2), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pago := "Efectivo"
	if factura.PagoElectronico {
		pago = "Pago electrónico"
		if factura.NoOperacion != nil && *factura.NoOperacion != "" {
			pago = fmt.Sprintf("Pago electrónico (op. %s)", *factura.NoOperacion)
		}
	}
	pdf.CellFormat(contentW, 4, tr(pago), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("Gracias por su compra"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}
