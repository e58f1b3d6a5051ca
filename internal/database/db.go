package database

import (
	"log"

	"kasirpos-backend/internal/config"
	"kasirpos-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Tidak bisa konek ke database: %v", err)
	}

	// Migration manual: kolom is_central ditambahkan belakangan.
	// Data lama: cabang dengan id terendah per business dianggap pusat,
	// jadi kolom cukup ditambahkan dengan default false (resolusi pusat
	// tetap jalan lewat fallback id terendah).
	if DB.Migrator().HasTable(&models.Branch{}) {
		if !DB.Migrator().HasColumn(&models.Branch{}, "is_central") {
			log.Println("Menambahkan kolom branches.is_central...")
			if err := DB.Exec("ALTER TABLE branches ADD COLUMN is_central BOOLEAN NOT NULL DEFAULT FALSE").Error; err != nil {
				log.Printf("Gagal menambah kolom is_central (mungkin sudah ada): %v", err)
			}
		}
	}

	err = DB.AutoMigrate(
		&models.BusinessProfile{},
		&models.Branch{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Transfer{},
		&models.TransferHistory{},
		&models.Sale{},
		&models.SaleItem{},
		&models.CashMovement{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate gagal: %v", err)
	}

	log.Println("Koneksi database sukses. Migration selesai.")
}
