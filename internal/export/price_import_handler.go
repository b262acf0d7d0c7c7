package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"foodcost-backend/internal/database"
	"foodcost-backend/internal/price"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// POST /api/import/prices
// ID boşsa yeni kalem oluşturulur, doluysa ID ile güncellenir. Satır bazlı
// hatalar toplanır, tek hatalı satır tüm yüklemeyi iptal etmez.
func ImportPricesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenmedi")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya CSV olmalı")
		}

		f, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya açılamadı")
		}
		defer f.Close()

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1

		header, err := r.Read()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "CSV okunamadı")
		}
		col := make(map[string]int, len(header))
		for i, h := range header {
			col[strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))] = i
		}

		field := func(rec []string, name string) (string, bool) {
			idx, ok := col[name]
			if !ok || idx >= len(rec) {
				return "", ok
			}
			return strings.TrimSpace(rec[idx]), true
		}

		created := 0
		updated := 0
		importErrors := make([]string, 0)

		rowNum := 1
		for {
			rec, err := r.Read()
			if err == io.EOF {
				break
			}
			rowNum++
			if err != nil {
				importErrors = append(importErrors, fmt.Sprintf("Satır %d: %v", rowNum, err))
				continue
			}

			id, _ := field(rec, "ID")
			// Hem yeni 'Locations' hem eski 'Location' kolonu desteklenir
			locStr, hasLocations := field(rec, "Locations")
			if !hasLocations {
				locStr, _ = field(rec, "Location")
			}
			supplier, _ := field(rec, "Supplier")
			itemName, _ := field(rec, "Item")
			purchaseUnit, _ := field(rec, "PurchaseUnit")

			unitsStr, _ := field(rec, "UnitsPerInv")
			units := 1.0
			if unitsStr != "" {
				units, err = strconv.ParseFloat(unitsStr, 64)
				if err != nil {
					importErrors = append(importErrors, fmt.Sprintf("Satır %d: Geçersiz sayı formatı", rowNum))
					continue
				}
			}

			priceStr, _ := field(rec, "CurrentPrice")
			currentPrice := 0.0
			if priceStr != "" {
				currentPrice, err = strconv.ParseFloat(priceStr, 64)
				if err != nil {
					importErrors = append(importErrors, fmt.Sprintf("Satır %d: Geçersiz sayı formatı", rowNum))
					continue
				}
			}

			if itemName == "" {
				importErrors = append(importErrors, fmt.Sprintf("Satır %d: Kalem adı zorunlu", rowNum))
				continue
			}

			input := price.ItemInput{
				Item:         itemName,
				Supplier:     supplier,
				PurchaseUnit: purchaseUnit,
				UnitsPerInv:  units,
				CurrentPrice: currentPrice,
				Locations:    splitLocationNames(locStr),
			}

			if id != "" {
				if _, err := price.UpdateItem(database.DB, id, input); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						importErrors = append(importErrors, fmt.Sprintf("Satır %d: ID '%s' bulunamadı", rowNum, id))
					} else {
						importErrors = append(importErrors, fmt.Sprintf("Satır %d: %v", rowNum, err))
					}
					continue
				}
				updated++
			} else {
				if _, err := price.CreateItem(database.DB, input); err != nil {
					importErrors = append(importErrors, fmt.Sprintf("Satır %d: %v", rowNum, err))
					continue
				}
				created++
			}
		}

		return c.JSON(fiber.Map{
			"created": created,
			"updated": updated,
			"errors":  importErrors,
		})
	}
}

// splitLocationNames: noktalı virgül veya virgülle ayrılmış isim listesi
func splitLocationNames(raw string) []string {
	raw = strings.ReplaceAll(raw, ",", ";")
	names := make([]string, 0)
	for _, part := range strings.Split(raw, ";") {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}
	return names
}
