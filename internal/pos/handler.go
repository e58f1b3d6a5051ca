package pos

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"kasirpos-backend/internal/audit"
	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SaleItemResponse struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type SaleResponse struct {
	ID            uint               `json:"id"`
	BranchID      uint               `json:"branch_id"`
	InvoiceNumber string             `json:"invoice_number"`
	Date          string             `json:"date"`
	Total         float64            `json:"total"`
	Payment       float64            `json:"payment"`
	Change        float64            `json:"change"`
	Method        string             `json:"method"`
	Items         []SaleItemResponse `json:"items"`
}

func toSaleResponse(s models.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return SaleResponse{
		ID:            s.ID,
		BranchID:      s.BranchID,
		InvoiceNumber: s.InvoiceNumber,
		Date:          s.Date.Format("2006-01-02 15:04:05"),
		Total:         s.Total,
		Payment:       s.Payment,
		Change:        s.Change,
		Method:        string(s.Method),
		Items:         items,
	}
}

// POST /api/sales
func CheckoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		branchID, err := sess.ResolveBranchID(body.BranchID)
		if err != nil {
			return err
		}

		svc := NewService(database.DB)
		sale, err := svc.Checkout(sess, branchID, &body)
		if err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				return fiber.NewError(fiber.StatusBadRequest, vErr.Reason)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi gagal disimpan")
		}

		_ = audit.WriteLog(audit.LogOptions{
			BusinessID:  sess.BusinessID,
			BranchID:    &branchID,
			UserID:      sess.UserID,
			UserName:    sess.UserName,
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Penjualan %s: %d item, total %.0f", sale.InvoiceNumber, len(sale.Items), sale.Total),
			After:       sale,
		})

		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(*sale))
	}
}

// GET /api/sales?branch_id=&date=
func ListSalesHandler() fiber.Handler {
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
			Preload("Items").
			Where("branch_id = ? AND business_id = ?", branchID, sess.BusinessID).
			Order("date DESC, id DESC")

		if v := c.Query("date"); v != "" {
			d, convErr := time.Parse("2006-01-02", v)
			if convErr != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
			}
			q = q.Where("date >= ? AND date < ?", d, d.AddDate(0, 0, 1))
		}

		var sales []models.Sale
		if err := q.Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Penjualan tidak bisa dilisting")
		}

		res := make([]SaleResponse, 0, len(sales))
		for _, s := range sales {
			res = append(res, toSaleResponse(s))
		}

		return c.JSON(res)
	}
}

// GET /api/sales/:id
func GetSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var sale models.Sale
		if err := database.DB.
			Preload("Items").
			First(&sale, "id = ? AND business_id = ?", id, sess.BusinessID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaksi tidak ditemukan")
		}

		return c.JSON(toSaleResponse(sale))
	}
}
