package main

import (
	"log"
	"strings"

	"kasirpos-backend/internal/audit"
	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/branch"
	"kasirpos-backend/internal/config"
	"kasirpos-backend/internal/dashboard"
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/inventory"
	"kasirpos-backend/internal/kas"
	"kasirpos-backend/internal/models"
	"kasirpos-backend/internal/pos"
	"kasirpos-backend/internal/report"
	"kasirpos-backend/internal/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Terjadi kesalahan server",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-owner", auth.RegisterOwnerHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Owner only
	ownerRoutes := protected.Group("")
	ownerRoutes.Use(auth.RequireRole(models.RoleOwner))

	// Manajemen cabang & karyawan
	ownerRoutes.Post("/branches", branch.CreateBranchHandler())
	ownerRoutes.Put("/branches/:id", branch.UpdateBranchHandler())
	ownerRoutes.Delete("/branches/:id", branch.DeleteBranchHandler())
	ownerRoutes.Post("/branches/:id/employees", branch.CreateEmployeeHandler())
	ownerRoutes.Get("/branches/:id/employees", branch.ListEmployeesHandler())

	// Owner + admin cabang
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleOwner, models.RoleBranchAdmin))

	// Manajemen produk & kategori
	adminRoutes.Post("/products", inventory.CreateProductHandler())
	adminRoutes.Put("/products/:id", inventory.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", inventory.DeleteProductHandler())
	adminRoutes.Post("/categories", inventory.CreateCategoryHandler())
	adminRoutes.Put("/categories/:id", inventory.UpdateCategoryHandler())
	adminRoutes.Delete("/categories/:id", inventory.DeleteCategoryHandler())

	// Transfer stok antar cabang
	adminRoutes.Post("/transfers", transfer.ExecuteTransferHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Direktori cabang & katalog (semua role)
	protected.Get("/branches", branch.ListBranchesHandler())
	protected.Get("/branches/:id", branch.GetBranchHandler())
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/products/in-stock", inventory.ListInStockProductsHandler())
	protected.Get("/categories", inventory.ListCategoriesHandler())

	// Kasir
	protected.Post("/sales", pos.CheckoutHandler())
	protected.Get("/sales", pos.ListSalesHandler())
	protected.Get("/sales/:id", pos.GetSaleHandler())

	// Riwayat transfer
	protected.Get("/transfers", transfer.ListTransferHistoryHandler())

	// Buku kas
	protected.Post("/cash-movements", kas.CreateCashMovementHandler())
	protected.Get("/cash-movements", kas.ListCashMovementsHandler())
	protected.Get("/cash-movements/summary/monthly", kas.MonthlySummaryHandler())

	// Laporan penjualan
	protected.Get("/reports/sales/daily", report.DailySalesReportHandler())
	protected.Get("/reports/sales/monthly", report.MonthlySalesReportHandler())
	protected.Get("/reports/sales/export", report.ExportSalesReportHandler())

	// Dashboard
	protected.Get("/dashboard/sales-chart", dashboard.SalesChartHandler())

	log.Println("Server jalan di port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
