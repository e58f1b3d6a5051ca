package branch

import (
	"strings"

	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateEmployeeRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"` // branch_admin | kasir
}

type EmployeeResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	BranchID  *uint  `json:"branch_id"`
	CreatedAt string `json:"created_at"`
}

// POST /api/branches/:id/employees
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		branchID := c.Params("id")

		var b models.Branch
		if err := database.DB.First(&b, "id = ? AND business_id = ?", branchID, sess.BusinessID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cabang tidak ditemukan")
		}

		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama, email dan password wajib diisi")
		}

		switch body.Role {
		case models.RoleBranchAdmin, models.RoleKasir:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Role harus branch_admin atau kasir")
		}

		var exist models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email sudah terdaftar")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		user := models.User{
			BusinessID:   sess.BusinessID,
			BranchID:     &b.ID,
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         body.Role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Karyawan tidak bisa dibuat")
		}

		// Password hanya dikembalikan sekali, saat pembuatan
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"branch_id": user.BranchID,
			"password":  body.Password,
		})
	}
}

// GET /api/branches/:id/employees
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		branchID := c.Params("id")

		var users []models.User
		if err := database.DB.
			Where("branch_id = ? AND business_id = ?", branchID, sess.BusinessID).
			Order("created_at DESC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Karyawan tidak bisa dilisting")
		}

		res := make([]EmployeeResponse, 0, len(users))
		for _, u := range users {
			res = append(res, EmployeeResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Role:      string(u.Role),
				BranchID:  u.BranchID,
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
