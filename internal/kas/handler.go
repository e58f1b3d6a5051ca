package kas

import (
	"fmt"
	"strconv"
	"time"

	"kasirpos-backend/internal/audit"
	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateCashMovementRequest struct {
	Date        *string              `json:"date"` // "2026-08-30", kosong = hari ini
	Direction   models.CashDirection `json:"direction"`
	Amount      float64              `json:"amount"`
	Description string               `json:"description"`
	BranchID    *uint                `json:"branch_id"` // untuk owner
}

type CashMovementResponse struct {
	ID          uint                 `json:"id"`
	BranchID    uint                 `json:"branch_id"`
	Date        string               `json:"date"`
	Direction   models.CashDirection `json:"direction"`
	Amount      float64              `json:"amount"`
	Description string               `json:"description"`
	RefType     string               `json:"ref_type"`
}

type MonthlySummaryResponse struct {
	BranchID uint    `json:"branch_id"`
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	TotalIn  float64 `json:"total_in"`
	TotalOut float64 `json:"total_out"`
	Balance  float64 `json:"balance"`
}

// POST /api/cash-movements
func CreateCashMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateCashMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nominal harus lebih dari 0")
		}

		switch body.Direction {
		case models.CashIn, models.CashOut:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Arah kas tidak valid (in|out)")
		}

		branchID, err := sess.ResolveBranchID(body.BranchID)
		if err != nil {
			return err
		}

		// tanggal per hari, jam dibuang
		var date time.Time
		if body.Date == nil || *body.Date == "" {
			now := time.Now()
			date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		} else {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
			}
			date = d
		}

		mov := models.CashMovement{
			BusinessID:  sess.BusinessID,
			BranchID:    branchID,
			Date:        date,
			Direction:   body.Direction,
			Amount:      body.Amount,
			Description: body.Description,
		}

		if err := database.DB.Create(&mov).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kas tidak bisa disimpan")
		}

		_ = audit.WriteLog(audit.LogOptions{
			BusinessID:  sess.BusinessID,
			BranchID:    &branchID,
			UserID:      sess.UserID,
			UserName:    sess.UserName,
			EntityType:  "cash_movement",
			EntityID:    mov.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Kas %s %.0f: %s", mov.Direction, mov.Amount, mov.Description),
			After:       mov,
		})

		return c.Status(fiber.StatusCreated).JSON(CashMovementResponse{
			ID:          mov.ID,
			BranchID:    mov.BranchID,
			Date:        mov.Date.Format("2006-01-02"),
			Direction:   mov.Direction,
			Amount:      mov.Amount,
			Description: mov.Description,
			RefType:     mov.RefType,
		})
	}
}

// applyPeriodFilter membatasi query kas ke satu tahun penuh, atau satu
// bulan kalau month ikut diisi. Tanpa year query dikembalikan apa adanya.
func applyPeriodFilter(q *gorm.DB, yearStr, monthStr string) (*gorm.DB, error) {
	if yearStr == "" {
		return q, nil
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "year tidak valid")
	}

	if monthStr == "" {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		return q.Where("date >= ? AND date < ?", start, start.AddDate(1, 0, 0)), nil
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "month tidak valid (1-12)")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return q.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0)), nil
}

// GET /api/cash-movements?branch_id=&year=&month=
// month opsional; year saja berarti satu tahun penuh.
func ListCashMovementsHandler() fiber.Handler {
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

		q := database.DB.
			Where("branch_id = ? AND business_id = ?", branchID, sess.BusinessID).
			Order("date DESC, id DESC")

		q, err = applyPeriodFilter(q, c.Query("year"), c.Query("month"))
		if err != nil {
			return err
		}

		var movs []models.CashMovement
		if err := q.Find(&movs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kas tidak bisa dilisting")
		}

		res := make([]CashMovementResponse, 0, len(movs))
		for _, m := range movs {
			res = append(res, CashMovementResponse{
				ID:          m.ID,
				BranchID:    m.BranchID,
				Date:        m.Date.Format("2006-01-02"),
				Direction:   m.Direction,
				Amount:      m.Amount,
				Description: m.Description,
				RefType:     m.RefType,
			})
		}

		return c.JSON(res)
	}
}

// GET /api/cash-movements/summary/monthly?branch_id=&year=&month=
func MonthlySummaryHandler() fiber.Handler {
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

		year, yErr := strconv.Atoi(c.Query("year"))
		month, mErr := strconv.Atoi(c.Query("month"))
		if yErr != nil || mErr != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "year dan month wajib diisi")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)

		type row struct {
			Direction models.CashDirection
			Total     float64
		}
		var rows []row
		if err := database.DB.Model(&models.CashMovement{}).
			Select("direction, COALESCE(SUM(amount), 0) AS total").
			Where("branch_id = ? AND business_id = ? AND date >= ? AND date < ?", branchID, sess.BusinessID, start, end).
			Group("direction").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ringkasan kas tidak bisa dihitung")
		}

		resp := MonthlySummaryResponse{
			BranchID: branchID,
			Year:     year,
			Month:    month,
		}
		for _, r := range rows {
			switch r.Direction {
			case models.CashIn:
				resp.TotalIn = r.Total
			case models.CashOut:
				resp.TotalOut = r.Total
			}
		}
		resp.Balance = resp.TotalIn - resp.TotalOut

		return c.JSON(resp)
	}
}
