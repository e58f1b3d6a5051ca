package branch

import (
	"strings"

	"kasirpos-backend/internal/audit"
	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BranchResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	IsCentral bool   `json:"is_central"`
	CreatedAt string `json:"created_at"`
}

type CreateBranchRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     *string `json:"phone"` // Opsional
	IsCentral bool    `json:"is_central"`
}

type UpdateBranchRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	IsCentral *bool   `json:"is_central"`
}

// ResolveCentral: cabang pusat adalah yang diberi flag is_central;
// kalau tidak ada yang diberi flag, cabang dengan id terendah.
// branches diasumsikan sudah terurut naik berdasarkan id.
func ResolveCentral(branches []models.Branch) *models.Branch {
	for i := range branches {
		if branches[i].IsCentral {
			return &branches[i]
		}
	}
	if len(branches) > 0 {
		return &branches[0]
	}
	return nil
}

// ListBranches: direktori cabang milik satu business, terurut id.
func ListBranches(businessID uint) ([]models.Branch, error) {
	var branches []models.Branch
	err := database.DB.
		Where("business_id = ?", businessID).
		Order("id ASC").
		Find(&branches).Error
	return branches, err
}

func toBranchResponse(b models.Branch, centralID uint) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		IsCentral: b.ID == centralID,
		CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/branches
func CreateBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama cabang tidak boleh kosong")
		}

		b := models.Branch{
			BusinessID: sess.BusinessID,
			Name:       body.Name,
			Address:    body.Address,
			IsCentral:  body.IsCentral,
		}
		if body.Phone != nil {
			b.Phone = strings.TrimSpace(*body.Phone)
		}

		if err := database.DB.Create(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cabang tidak bisa dibuat")
		}

		_ = audit.WriteLog(audit.LogOptions{
			BusinessID:  sess.BusinessID,
			BranchID:    &b.ID,
			UserID:      sess.UserID,
			UserName:    sess.UserName,
			EntityType:  "branch",
			EntityID:    b.ID,
			Action:      models.AuditActionCreate,
			Description: "Cabang ditambahkan: " + b.Name,
			After:       b,
		})

		branches, _ := ListBranches(sess.BusinessID)
		var centralID uint
		if central := ResolveCentral(branches); central != nil {
			centralID = central.ID
		}

		return c.Status(fiber.StatusCreated).JSON(toBranchResponse(b, centralID))
	}
}

// GET /api/branches
func ListBranchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		branches, err := ListBranches(sess.BusinessID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cabang tidak bisa dilisting")
		}

		var centralID uint
		if central := ResolveCentral(branches); central != nil {
			centralID = central.ID
		}

		res := make([]BranchResponse, 0, len(branches))
		for _, b := range branches {
			res = append(res, toBranchResponse(b, centralID))
		}

		return c.JSON(res)
	}
}

// GET /api/branches/:id
func GetBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var b models.Branch
		if err := database.DB.First(&b, "id = ? AND business_id = ?", id, sess.BusinessID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cabang tidak ditemukan")
		}

		branches, _ := ListBranches(sess.BusinessID)
		var centralID uint
		if central := ResolveCentral(branches); central != nil {
			centralID = central.ID
		}

		return c.JSON(toBranchResponse(b, centralID))
	}
}

// PUT /api/branches/:id
func UpdateBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var b models.Branch
		if err := database.DB.First(&b, "id = ? AND business_id = ?", id, sess.BusinessID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cabang tidak ditemukan")
		}

		var body UpdateBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid")
		}

		before := b

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama cabang tidak boleh kosong")
			}
			b.Name = name
		}
		if body.Address != nil {
			b.Address = *body.Address
		}
		if body.Phone != nil {
			b.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.IsCentral != nil {
			b.IsCentral = *body.IsCentral
		}

		if err := database.DB.Save(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cabang tidak bisa diupdate")
		}

		_ = audit.WriteLog(audit.LogOptions{
			BusinessID:  sess.BusinessID,
			BranchID:    &b.ID,
			UserID:      sess.UserID,
			UserName:    sess.UserName,
			EntityType:  "branch",
			EntityID:    b.ID,
			Action:      models.AuditActionUpdate,
			Description: "Cabang diupdate: " + b.Name,
			Before:      before,
			After:       b,
		})

		branches, _ := ListBranches(sess.BusinessID)
		var centralID uint
		if central := ResolveCentral(branches); central != nil {
			centralID = central.ID
		}

		return c.JSON(toBranchResponse(b, centralID))
	}
}

// DELETE /api/branches/:id
func DeleteBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		if err := database.DB.Delete(&models.Branch{}, "id = ? AND business_id = ?", id, sess.BusinessID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cabang tidak bisa dihapus")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
