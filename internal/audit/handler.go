package audit

import (
	"strconv"

	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?branch_id=&entity_type=&limit=
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		q := database.DB.
			Where("business_id = ?", sess.BusinessID).
			Order("created_at DESC")

		if v := c.Query("branch_id"); v != "" {
			id, convErr := strconv.ParseUint(v, 10, 64)
			if convErr != nil {
				return fiber.NewError(fiber.StatusBadRequest, "branch_id tidak valid")
			}
			q = q.Where("branch_id = ?", uint(id))
		}
		if v := c.Query("entity_type"); v != "" {
			q = q.Where("entity_type = ?", v)
		}

		limit := 100
		if v := c.Query("limit"); v != "" {
			if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 && n <= 500 {
				limit = n
			}
		}

		var logs []models.AuditLog
		if err := q.Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit log tidak bisa diambil")
		}

		return c.JSON(logs)
	}
}
