package report

import (
	"fmt"
	"strconv"
	"time"

	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/sales/export?branch_id=&year=&month=
// Mengunduh laporan penjualan sebulan sebagai file .xlsx.
func ExportSalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		branchID, err := resolveBranchID(c, sess)
		if err != nil {
			return err
		}

		year, yErr := strconv.Atoi(c.Query("year"))
		month, mErr := strconv.Atoi(c.Query("month"))
		if yErr != nil || mErr != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "year dan month wajib diisi")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)

		var sales []models.Sale
		if err := database.DB.
			Preload("Items").
			Where("branch_id = ? AND business_id = ? AND date >= ? AND date < ?",
				branchID, sess.BusinessID, start, end).
			Order("date ASC, id ASC").
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data penjualan tidak bisa diambil")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Penjualan"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"No Invoice", "Tanggal", "Produk", "Jumlah", "Harga Satuan", "Subtotal", "Metode"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		row := 2
		var grandTotal float64
		for _, s := range sales {
			for _, item := range s.Items {
				f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.InvoiceNumber)
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.Date.Format("2006-01-02 15:04:05"))
				f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.ProductName)
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Quantity)
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.UnitPrice)
				f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Subtotal)
				f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(s.Method))
				row++
			}
			grandTotal += s.Total
		}

		f.SetCellValue(sheet, fmt.Sprintf("E%d", row+1), "TOTAL")
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row+1), grandTotal)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File Excel tidak bisa dibuat")
		}

		filename := fmt.Sprintf("laporan-penjualan-%d-%02d.xlsx", year, month)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

		return c.Send(buf.Bytes())
	}
}
