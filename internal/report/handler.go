package report

import (
	"strconv"
	"time"

	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DailySalesResponse struct {
	BranchID         uint    `json:"branch_id"`
	Date             string  `json:"date"`
	TransactionCount int64   `json:"transaction_count"`
	ItemsSold        float64 `json:"items_sold"`
	TotalSales       float64 `json:"total_sales"`
}

type MonthlySalesDay struct {
	Date             string  `json:"date"`
	TransactionCount int64   `json:"transaction_count"`
	TotalSales       float64 `json:"total_sales"`
}

type MonthlySalesResponse struct {
	BranchID   uint              `json:"branch_id"`
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Days       []MonthlySalesDay `json:"days"`
	GrandTotal float64           `json:"grand_total"`
}

type dailySummary struct {
	TransactionCount int64
	ItemsSold        float64
	TotalSales       float64
}

// summarizeDailySales menghitung rekap penjualan satu cabang untuk satu
// tanggal kalender [day, day+1).
func summarizeDailySales(db *gorm.DB, branchID, businessID uint, day time.Time) (dailySummary, error) {
	next := day.AddDate(0, 0, 1)
	var s dailySummary

	if err := db.Model(&models.Sale{}).
		Where("branch_id = ? AND business_id = ? AND date >= ? AND date < ?",
			branchID, businessID, day, next).
		Count(&s.TransactionCount).Error; err != nil {
		return s, err
	}

	if err := db.Model(&models.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Where("branch_id = ? AND business_id = ? AND date >= ? AND date < ?",
			branchID, businessID, day, next).
		Scan(&s.TotalSales).Error; err != nil {
		return s, err
	}

	if err := db.Model(&models.SaleItem{}).
		Select("COALESCE(SUM(sale_items.quantity), 0)").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.branch_id = ? AND sales.business_id = ? AND sales.date >= ? AND sales.date < ?",
			branchID, businessID, day, next).
		Scan(&s.ItemsSold).Error; err != nil {
		return s, err
	}

	return s, nil
}

func resolveBranchID(c *fiber.Ctx, sess *auth.Session) (uint, error) {
	var requested *uint
	if v := c.Query("branch_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fiber.NewError(fiber.StatusBadRequest, "branch_id tidak valid")
		}
		u := uint(id)
		requested = &u
	}
	return sess.ResolveBranchID(requested)
}

// GET /api/reports/sales/daily?branch_id=&date=
func DailySalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		branchID, err := resolveBranchID(c, sess)
		if err != nil {
			return err
		}

		dateStr := c.Query("date")
		var day time.Time
		if dateStr == "" {
			now := time.Now()
			day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		} else {
			d, convErr := time.Parse("2006-01-02", dateStr)
			if convErr != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
			}
			day = d
		}

		summary, err := summarizeDailySales(database.DB, branchID, sess.BusinessID, day)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Laporan tidak bisa dihitung")
		}

		return c.JSON(DailySalesResponse{
			BranchID:         branchID,
			Date:             day.Format("2006-01-02"),
			TransactionCount: summary.TransactionCount,
			ItemsSold:        summary.ItemsSold,
			TotalSales:       summary.TotalSales,
		})
	}
}

// GET /api/reports/sales/monthly?branch_id=&year=&month=
func MonthlySalesReportHandler() fiber.Handler {
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
			Where("branch_id = ? AND business_id = ? AND date >= ? AND date < ?",
				branchID, sess.BusinessID, start, end).
			Order("date ASC").
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Laporan tidak bisa dihitung")
		}

		// agregasi per hari di memori, jumlah baris sebulan kecil
		type agg struct {
			count int64
			total float64
		}
		byDay := make(map[string]*agg)
		var grandTotal float64
		for _, s := range sales {
			key := s.Date.Format("2006-01-02")
			a, ok := byDay[key]
			if !ok {
				a = &agg{}
				byDay[key] = a
			}
			a.count++
			a.total += s.Total
			grandTotal += s.Total
		}

		days := make([]MonthlySalesDay, 0, len(byDay))
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			if a, ok := byDay[key]; ok {
				days = append(days, MonthlySalesDay{
					Date:             key,
					TransactionCount: a.count,
					TotalSales:       a.total,
				})
			}
		}

		return c.JSON(MonthlySalesResponse{
			BranchID:   branchID,
			Year:       year,
			Month:      month,
			Days:       days,
			GrandTotal: grandTotal,
		})
	}
}
