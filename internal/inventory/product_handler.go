package inventory

import (
	"strconv"
	"strings"

	"kasirpos-backend/internal/audit"
	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateProductRequest struct {
	Name         string  `json:"name"`
	Barcode      string  `json:"barcode"`
	Unit         string  `json:"unit"`
	CategoryID   *uint   `json:"category_id"`
	CostPrice    float64 `json:"cost_price"`
	RetailPrice  float64 `json:"retail_price"`
	MemberPrice1 float64 `json:"member_price_1"`
	MemberPrice2 float64 `json:"member_price_2"`
	Stock        float64 `json:"stock"`
	BranchID     *uint   `json:"branch_id"` // untuk owner
}

type UpdateProductRequest struct {
	Name         *string  `json:"name"`
	Barcode      *string  `json:"barcode"`
	Unit         *string  `json:"unit"`
	CategoryID   *uint    `json:"category_id"`
	CostPrice    *float64 `json:"cost_price"`
	RetailPrice  *float64 `json:"retail_price"`
	MemberPrice1 *float64 `json:"member_price_1"`
	MemberPrice2 *float64 `json:"member_price_2"`
	Stock        *float64 `json:"stock"`
}

type ProductResponse struct {
	ID           uint    `json:"id"`
	BranchID     uint    `json:"branch_id"`
	CategoryID   *uint   `json:"category_id"`
	Name         string  `json:"name"`
	Barcode      string  `json:"barcode"`
	Unit         string  `json:"unit"`
	CostPrice    float64 `json:"cost_price"`
	RetailPrice  float64 `json:"retail_price"`
	MemberPrice1 float64 `json:"member_price_1"`
	MemberPrice2 float64 `json:"member_price_2"`
	Stock        float64 `json:"stock"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		BranchID:     p.BranchID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Barcode:      p.Barcode,
		Unit:         p.Unit,
		CostPrice:    p.CostPrice,
		RetailPrice:  p.RetailPrice,
		MemberPrice1: p.MemberPrice1,
		MemberPrice2: p.MemberPrice2,
		Stock:        p.Stock,
	}
}

// ListInStockProducts: produk dengan stok > 0 di satu cabang.
// Read-only, dipanggil berulang untuk refresh layar transfer/kasir.
func ListInStockProducts(branchID, businessID uint) ([]models.Product, error) {
	var products []models.Product
	err := database.DB.
		Where("branch_id = ? AND business_id = ? AND stock > 0", branchID, businessID).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Barcode = strings.TrimSpace(body.Barcode)

		if body.Name == "" || body.Unit == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama dan satuan produk wajib diisi")
		}
		if body.RetailPrice <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Harga jual harus lebih dari 0")
		}
		if body.Stock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stok tidak boleh negatif")
		}

		branchID, err := sess.ResolveBranchID(body.BranchID)
		if err != nil {
			return err
		}

		p := models.Product{
			BusinessID:   sess.BusinessID,
			BranchID:     branchID,
			CategoryID:   body.CategoryID,
			Name:         body.Name,
			Barcode:      body.Barcode,
			Unit:         body.Unit,
			CostPrice:    body.CostPrice,
			RetailPrice:  body.RetailPrice,
			MemberPrice1: body.MemberPrice1,
			MemberPrice2: body.MemberPrice2,
			Stock:        body.Stock,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa dibuat")
		}

		_ = audit.WriteLog(audit.LogOptions{
			BusinessID:  sess.BusinessID,
			BranchID:    &branchID,
			UserID:      sess.UserID,
			UserName:    sess.UserName,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: "Produk ditambahkan: " + p.Name,
			After:       p,
		})

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
	}
}

// GET /api/products?branch_id=&in_stock=&barcode=&category_id=
func ListProductsHandler() fiber.Handler {
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
			Order("name ASC")

		if v := c.Query("barcode"); v != "" {
			q = q.Where("barcode = ?", v)
		}
		if v := c.Query("category_id"); v != "" {
			q = q.Where("category_id = ?", v)
		}

		var products []models.Product
		if err := q.Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa dilisting")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}

		return c.JSON(res)
	}
}

// GET /api/products/in-stock?branch_id=
// Dipakai layar transfer dan kasir: hanya produk dengan stok > 0.
func ListInStockProductsHandler() fiber.Handler {
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

		products, err := ListInStockProducts(branchID, sess.BusinessID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa dilisting")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}

		return c.JSON(res)
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ? AND business_id = ?", id, sess.BusinessID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid")
		}

		before := p

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama produk tidak boleh kosong")
			}
			p.Name = name
		}
		if body.Barcode != nil {
			p.Barcode = strings.TrimSpace(*body.Barcode)
		}
		if body.Unit != nil {
			p.Unit = *body.Unit
		}
		if body.CategoryID != nil {
			p.CategoryID = body.CategoryID
		}
		if body.CostPrice != nil {
			p.CostPrice = *body.CostPrice
		}
		if body.RetailPrice != nil {
			p.RetailPrice = *body.RetailPrice
		}
		if body.MemberPrice1 != nil {
			p.MemberPrice1 = *body.MemberPrice1
		}
		if body.MemberPrice2 != nil {
			p.MemberPrice2 = *body.MemberPrice2
		}
		if body.Stock != nil {
			if *body.Stock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Stok tidak boleh negatif")
			}
			p.Stock = *body.Stock
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa diupdate")
		}

		_ = audit.WriteLog(audit.LogOptions{
			BusinessID:  sess.BusinessID,
			BranchID:    &p.BranchID,
			UserID:      sess.UserID,
			UserName:    sess.UserName,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: "Produk diupdate: " + p.Name,
			Before:      before,
			After:       p,
		})

		return c.JSON(toProductResponse(p))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.SessionFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ? AND business_id = ?", id, sess.BusinessID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa dihapus")
		}

		_ = audit.WriteLog(audit.LogOptions{
			BusinessID:  sess.BusinessID,
			BranchID:    &p.BranchID,
			UserID:      sess.UserID,
			UserName:    sess.UserName,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionDelete,
			Description: "Produk dihapus: " + p.Name,
			Before:      p,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
