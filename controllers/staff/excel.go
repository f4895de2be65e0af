package staffControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/models"
)

// ExportProductsToExcel streams the full catalog as an .xlsx download.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Slug", "Description", "Brand",
			"Price", "SalePrice", "Stock", "Category", "Active", "ImageURL",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Brand)
			row.AddCell().SetValue(p.Price)
			if p.SalePrice != nil {
				row.AddCell().SetValue(*p.SalePrice)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.CategoryName())
			row.AddCell().SetValue(p.IsActive)
			row.AddCell().SetValue(p.ImageURL)
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to write Excel file"})
		}
	}
}

// ImportProductsFromExcel bulk-creates or updates products from an
// uploaded sheet with the same columns the export writes. Rows with a
// known ID update that product; the rest create new ones. Malformed rows
// are skipped, not fatal.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Excel file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, fileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Failed to parse Excel file"})
			return
		}
		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		created, updated, skipped := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			description := get(3)
			brand := get(4)
			price, priceErr := strconv.ParseFloat(get(5), 64)
			stock, _ := strconv.Atoi(get(7))

			if name == "" || priceErr != nil || price <= 0 || stock < 0 {
				skipped++
				continue
			}

			var salePrice *float64
			if sp, err := strconv.ParseFloat(get(6), 64); err == nil && sp > 0 && sp < price {
				salePrice = &sp
			}

			if id, err := strconv.Atoi(idStr); err == nil && id > 0 {
				var existing models.Product
				if err := db.First(&existing, id).Error; err == nil {
					updates := map[string]interface{}{
						"name":        name,
						"description": description,
						"brand":       brand,
						"price":       price,
						"sale_price":  salePrice,
						"stock":       stock,
					}
					if name != existing.Name {
						updates["slug"] = uniqueSlug(db, slugify(name), existing.ID)
					}
					if err := db.Model(&existing).Updates(updates).Error; err != nil {
						skipped++
						continue
					}
					updated++
					continue
				}
			}

			product := models.Product{
				Name:        name,
				Slug:        uniqueSlug(db, slugify(name), 0),
				Description: description,
				Brand:       brand,
				Price:       price,
				SalePrice:   salePrice,
				Stock:       stock,
				IsActive:    true,
				ImageURL:    get(10),
			}
			if err := db.Create(&product).Error; err != nil {
				skipped++
				continue
			}
			created++
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"created": created,
				"updated": updated,
				"skipped": skipped,
			},
		})
	}
}
