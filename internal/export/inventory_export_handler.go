package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"foodcost-backend/internal/database"
	"foodcost-backend/internal/inventory"

	"github.com/gofiber/fiber/v2"
)

// GET /api/export/inventory?month=&store=
// Sadece en az bir sayımı dolu kalemler, tedarikçi bazında ara toplamlarla
func ExportInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		month := c.Query("month")

		rows, err := inventory.List(database.DB, month, c.Query("store"), false)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Envanter okunamadı")
		}

		counted := make([]inventory.ItemRow, 0, len(rows))
		for _, r := range rows {
			if r.Count1 != 0 || r.Count2 != 0 || r.Count3 != 0 || r.Count4 != 0 {
				counted = append(counted, r)
			}
		}
		if len(counted) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sayım girilmiş kalem yok")
		}

		content, err := buildInventoryCSV(counted)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV oluşturulamadı")
		}

		filename := "inventory.csv"
		if month != "" {
			filename = fmt.Sprintf("inventory-%s.csv", month)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
		return c.SendString(content)
	}
}

func buildInventoryCSV(items []inventory.ItemRow) (string, error) {
	bySupplier := make(map[string][]inventory.ItemRow)
	for _, it := range items {
		key := it.Supplier
		if key == "" {
			key = "No Supplier"
		}
		bySupplier[key] = append(bySupplier[key], it)
	}

	suppliers := make([]string, 0, len(bySupplier))
	for s := range bySupplier {
		suppliers = append(suppliers, s)
	}
	sort.Strings(suppliers)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Supplier", "Item", "Unit", "Cost", "Count1", "Count2", "Count3", "Count4", "Total", "Extended"}); err != nil {
		return "", err
	}

	grandTotal := 0.0
	for _, supplier := range suppliers {
		supplierTotal := 0.0
		for _, it := range bySupplier[supplier] {
			total := it.Count1 + it.Count2 + it.Count3 + it.Count4
			extended := total * it.Cost
			supplierTotal += extended

			if err := w.Write([]string{
				it.Supplier,
				it.Item,
				it.Unit,
				fmt.Sprintf("%.2f", it.Cost),
				formatCount(it.Count1),
				formatCount(it.Count2),
				formatCount(it.Count3),
				formatCount(it.Count4),
				formatCount(total),
				fmt.Sprintf("%.2f", extended),
			}); err != nil {
				return "", err
			}
		}

		if err := w.Write([]string{supplier + " TOTAL", "", "", "", "", "", "", "", "", fmt.Sprintf("%.2f", supplierTotal)}); err != nil {
			return "", err
		}
		// tedarikçi blokları arasında boş satır
		if err := w.Write([]string{""}); err != nil {
			return "", err
		}
		grandTotal += supplierTotal
	}

	if err := w.Write([]string{"GRAND TOTAL", "", "", "", "", "", "", "", "", fmt.Sprintf("%.2f", grandTotal)}); err != nil {
		return "", err
	}

	w.Flush()
	return buf.String(), w.Error()
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
