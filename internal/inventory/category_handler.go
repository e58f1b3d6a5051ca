package inventory

import (
	"strings"

	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama kategori tidak boleh kosong")
		}

		cat := models.Category{
			BusinessID: sess.BusinessID,
			Name:       body.Name,
		}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori tidak bisa dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		var cats []models.Category
		if err := database.DB.
			Where("business_id = ?", sess.BusinessID).
			Order("name ASC").
			Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori tidak bisa dilisting")
		}

		return c.JSON(cats)
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var cat models.Category
		if err := database.DB.First(&cat, "id = ? AND business_id = ?", id, sess.BusinessID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama kategori tidak boleh kosong")
		}

		cat.Name = body.Name
		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori tidak bisa diupdate")
		}

		return c.JSON(cat)
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		if err := database.DB.Delete(&models.Category{}, "id = ? AND business_id = ?", id, sess.BusinessID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori tidak bisa dihapus")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
