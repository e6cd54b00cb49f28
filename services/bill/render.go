package bill

import (
	"bytes"
	"fmt"
	"time"

	"hospitalpanel/models"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// PNGRenderer rasterizes the bill the way the panel prints it: header band,
// hospital block, patient block, line item table, summary block.
type PNGRenderer struct{}

const (
	billWidth  = 900
	rowHeight  = 28
	marginX    = 40
	tableLeft  = marginX
	tableRight = billWidth - marginX
)

// Render draws the bill and returns it as PNG bytes.
func (PNGRenderer) Render(draft models.BillDraft) ([]byte, error) {
	height := 430 + rowHeight*(len(draft.LineItems)+1)
	dc := gg.NewContext(billWidth, height)
	dc.SetFontFace(basicfont.Face7x13)

	// Background.
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Header band.
	dc.SetRGB255(233, 244, 255)
	dc.DrawRectangle(0, 0, billWidth, 48)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.DrawString("Bill", marginX, 30)

	y := 80.0
	dc.DrawString("Hospital Information", marginX, y)
	y += 22
	dc.DrawString(fmt.Sprintf("Name: %s", draft.Hospital.Name), marginX, y)
	issued := time.Now().Format("Monday, January 2, 2006")
	dc.DrawString(fmt.Sprintf("Issued on: %s", issued), tableRight-320, y)
	y += 20
	dc.DrawString(fmt.Sprintf("Location: %s", draft.Hospital.Location), marginX, y)

	y += 34
	dc.DrawString("Patient Information", marginX, y)
	y += 22
	dc.DrawString(fmt.Sprintf("Name: %s", draft.Patient.Name), marginX, y)
	dc.DrawString(fmt.Sprintf("Phone: %s", draft.Patient.PhoneNumber), marginX+300, y)
	y += 20
	if draft.Patient.Gender != "" || draft.Patient.Age != "" {
		dc.DrawString(fmt.Sprintf("Gender: %s", draft.Patient.Gender), marginX, y)
		dc.DrawString(fmt.Sprintf("Age: %s", draft.Patient.Age), marginX+300, y)
		y += 20
	}

	// Table header.
	y += 20
	dc.SetRGB255(233, 244, 255)
	dc.DrawRectangle(tableLeft, y-18, float64(tableRight-tableLeft), rowHeight)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.DrawString("Services Provided", tableLeft+8, y)
	dc.DrawString("Quantity", tableLeft+380, y)
	dc.DrawString("Unit Charges", tableLeft+500, y)
	dc.DrawString("Amount", tableLeft+660, y)

	for _, item := range draft.LineItems {
		y += rowHeight
		dc.DrawString(item.Service, tableLeft+8, y)
		dc.DrawString(item.Quantity, tableLeft+380, y)
		dc.DrawString(item.UnitCharges, tableLeft+500, y)
		dc.DrawString(FormatAmount(LineAmount(item)), tableLeft+660, y)
	}

	// Summary block.
	sub := Subtotal(draft.LineItems)
	y += rowHeight + 10
	dc.SetLineWidth(1)
	dc.DrawLine(tableLeft, y, float64(tableRight), y)
	dc.Stroke()
	y += 24
	dc.DrawString("All services provided are subject to the hospital's policies.", marginX, y)
	dc.DrawString(fmt.Sprintf("Sub Total: %s", FormatAmount(sub)), tableLeft+560, y)
	y += 20
	dc.DrawString(fmt.Sprintf("CGST (9%%): %s", FormatAmount(Tax(sub, GSTRate))), tableLeft+560, y)
	y += 20
	dc.DrawString(fmt.Sprintf("SGST (9%%): %s", FormatAmount(Tax(sub, GSTRate))), tableLeft+560, y)
	y += 20
	dc.DrawString(fmt.Sprintf("Total: %s", FormatAmount(Total(draft.LineItems))), tableLeft+560, y)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding bill image: %w", err)
	}
	return buf.Bytes(), nil
}
