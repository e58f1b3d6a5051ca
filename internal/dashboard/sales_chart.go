package dashboard

import (
	"strconv"
	"time"

	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SalesChartPoint struct {
	Label            string  `json:"label"` // tanggal
	TransactionCount int64   `json:"transaction_count"`
	Total            float64 `json:"total"`
}

type SalesChartResponse struct {
	BranchID   uint              `json:"branch_id"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Points     []SalesChartPoint `json:"points"`
	GrandTotal float64           `json:"grand_total"`
}

// GET /api/dashboard/sales-chart?branch_id=&days=7
// Grafik penjualan harian untuk N hari terakhir.
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		var requested *uint
		if v := c.Query("branch_id"); v != "" {
			id, convErr := strconv.ParseUint(v, 10, 64)
			if convErr != nil {
				return fiber.NewError(fiber.StatusBadRequest, "branch_id tidak valid")
			}
			u := uint(id)
			requested = &u
		}
		branchID, err := sess.ResolveBranchID(requested)
		if err != nil {
			return err
		}

		days := 7
		if v := c.Query("days"); v != "" {
			n, convErr := strconv.Atoi(v)
			if convErr != nil || n <= 0 || n > 90 {
				return fiber.NewError(fiber.StatusBadRequest, "days tidak valid")
			}
			days = n
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		start := end.AddDate(0, 0, -days)

		var sales []models.Sale
		if err := database.DB.
			Where("branch_id = ? AND business_id = ? AND date >= ? AND date < ?",
				branchID, sess.BusinessID, start, end).
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data grafik tidak bisa diambil")
		}

		type agg struct {
			count int64
			total float64
		}
		byDay := make(map[string]*agg)
		var grandTotal float64
		for _, s := range sales {
			key := s.Date.In(loc).Format("2006-01-02")
			a, ok := byDay[key]
			if !ok {
				a = &agg{}
				byDay[key] = a
			}
			a.count++
			a.total += s.Total
			grandTotal += s.Total
		}

		points := make([]SalesChartPoint, 0, days)
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			point := SalesChartPoint{Label: key}
			if a, ok := byDay[key]; ok {
				point.TransactionCount = a.count
				point.Total = a.total
			}
			points = append(points, point)
		}

		return c.JSON(SalesChartResponse{
			BranchID:   branchID,
			From:       start.Format("2006-01-02"),
			To:         end.AddDate(0, 0, -1).Format("2006-01-02"),
			Points:     points,
			GrandTotal: grandTotal,
		})
	}
}
