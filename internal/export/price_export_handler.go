package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"foodcost-backend/internal/database"
	"foodcost-backend/internal/price"

	"github.com/gofiber/fiber/v2"
)

// GET /api/export/prices
// ID kolonu yeniden import için; lokasyonlar noktalı virgülle birleştirilir
func ExportPricesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := price.List(database.DB, true)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiyatlar okunamadı")
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)

		if err := w.Write([]string{"ID", "Locations", "Supplier", "Item", "PurchaseUnit", "UnitsPerInv", "CurrentPrice"}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV oluşturulamadı")
		}

		for _, it := range items {
			if err := w.Write([]string{
				it.ID,
				strings.Join(it.Locations, "; "),
				it.Supplier,
				it.Item,
				it.PurchaseUnit,
				formatCount(it.UnitsPerInv),
				fmt.Sprintf("%.2f", it.CurrentPrice),
			}); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "CSV oluşturulamadı")
			}
		}

		w.Flush()
		if err := w.Error(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV oluşturulamadı")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, "attachment; filename=prices-export.csv")
		return c.SendString(buf.String())
	}
}
