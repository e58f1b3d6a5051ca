package transfer

import (
	"errors"
	"fmt"
	"strconv"

	"kasirpos-backend/internal/audit"
	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TransferResponse struct {
	ID             uint    `json:"id"`
	TransferNumber string  `json:"transfer_number"`
	ProductID      uint    `json:"product_id"`
	SourceBranchID uint    `json:"source_branch_id"`
	DestBranchID   uint    `json:"dest_branch_id"`
	Quantity       float64 `json:"quantity"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

func toTransferResponse(tr models.Transfer, transferNumber string) TransferResponse {
	return TransferResponse{
		ID:             tr.ID,
		TransferNumber: transferNumber,
		ProductID:      tr.ProductID,
		SourceBranchID: tr.SourceBranchID,
		DestBranchID:   tr.DestBranchID,
		Quantity:       tr.Quantity,
		Status:         tr.Status,
		CreatedAt:      tr.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/transfers
func ExecuteTransferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		var body ExecuteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		svc := NewService(database.DB)
		result, err := svc.Execute(sess, &body)
		if err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				return fiber.NewError(fiber.StatusBadRequest, vErr.Reason)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Transfer stok gagal")
		}

		for _, tr := range result.Transfers {
			_ = audit.WriteLog(audit.LogOptions{
				BusinessID: sess.BusinessID,
				BranchID:   &tr.SourceBranchID,
				UserID:     sess.UserID,
				UserName:   sess.UserName,
				EntityType: "transfer",
				EntityID:   tr.ID,
				Action:     models.AuditActionCreate,
				Description: fmt.Sprintf("Transfer stok %s: produk %d x %.0f dari cabang %d ke cabang %d",
					result.TransferNumber, tr.ProductID, tr.Quantity, tr.SourceBranchID, tr.DestBranchID),
				After: tr,
			})
		}

		transfers := make([]TransferResponse, 0, len(result.Transfers))
		for _, tr := range result.Transfers {
			transfers = append(transfers, toTransferResponse(tr, result.TransferNumber))
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":         "Transfer stok berhasil",
			"transfer_number": result.TransferNumber,
			"transfers":       transfers,
		})
	}
}

// GET /api/transfers?branch_id=
func ListTransferHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		var filterBranchID *uint
		if v := c.Query("branch_id"); v != "" {
			id, convErr := strconv.ParseUint(v, 10, 64)
			if convErr != nil {
				return fiber.NewError(fiber.StatusBadRequest, "branch_id tidak valid")
			}
			u := uint(id)
			filterBranchID = &u
		}

		svc := NewService(database.DB)
		entries, err := svc.ListHistory(sess.BusinessID, filterBranchID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Riwayat transfer tidak bisa diambil")
		}

		return c.JSON(entries)
	}
}
