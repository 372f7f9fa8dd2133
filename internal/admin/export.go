package admin

import (
	"io"

	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"ID", "Title", "Unit price", "Inventory", "Inventory status", "Collection", "Last update",
}

// WriteProductsXLSX renders one sheet with a header row and one row per product.
func WriteProductsXLSX(w io.Writer, products []ProductRow) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.UnitPrice.StringFixed(2))
		row.AddCell().SetValue(p.Inventory)
		row.AddCell().SetValue(p.InventoryStatus)
		row.AddCell().SetValue(p.CollectionTitle)
		row.AddCell().SetValue(p.LastUpdate.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
