package transfer

import (
	"fmt"
	"time"

	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/models"

	"gorm.io/gorm"
)

// Service: satu-satunya jalur eksekusi transfer stok antar cabang.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type ExecuteResult struct {
	TransferNumber string            `json:"transfer_number"`
	Transfers      []models.Transfer `json:"transfers"`
}

// Execute memindahkan stok dari cabang asal ke cabang tujuan dalam SATU
// transaksi database: decrement stok asal (dijaga predikat stock >= qty,
// jadi stok tidak pernah bisa negatif walau ada transfer bersamaan),
// upsert stok tujuan berdasarkan barcode, tulis baris Transfer dan
// TransferHistory per produk. Gagal di baris mana pun membatalkan
// seluruh batch.
func (s *Service) Execute(sess *auth.Session, req *ExecuteRequest) (*ExecuteResult, error) {
	// Kedua cabang harus milik business yang sama. Request dengan cabang
	// kosong atau sama dibiarkan lolos ke Validate supaya pesannya tepat.
	if req.SourceBranchID != 0 && req.DestBranchID != 0 && req.SourceBranchID != req.DestBranchID {
		var count int64
		if err := s.db.Model(&models.Branch{}).
			Where("id IN ? AND business_id = ?", []uint{req.SourceBranchID, req.DestBranchID}, sess.BusinessID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count != 2 {
			return nil, &ValidationError{Reason: "Cabang asal atau tujuan tidak ditemukan"}
		}
	}

	// Muat produk cabang asal untuk validasi pre-flight
	ids := make([]uint, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.ProductID)
	}

	var sourceProducts []models.Product
	if len(ids) > 0 {
		if err := s.db.
			Where("id IN ? AND branch_id = ? AND business_id = ?", ids, req.SourceBranchID, sess.BusinessID).
			Find(&sourceProducts).Error; err != nil {
			return nil, err
		}
	}

	productByID := make(map[uint]models.Product, len(sourceProducts))
	for _, p := range sourceProducts {
		productByID[p.ID] = p
	}

	if err := Validate(req, productByID); err != nil {
		return nil, err
	}

	transferNumber := fmt.Sprintf("TRF-%d", time.Now().UnixMilli())
	result := &ExecuteResult{TransferNumber: transferNumber}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range req.Lines {
			src := productByID[line.ProductID]

			// Decrement stok asal, dijaga agar tidak pernah negatif.
			// Validasi di atas memakai bacaan yang bisa basi; predikat
			// stock >= qty yang jadi penentu akhir.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", src.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &ValidationError{Reason: fmt.Sprintf("Stok %s tidak mencukupi", src.Name)}
			}

			if err := s.upsertDestination(tx, sess.BusinessID, req.DestBranchID, src, line.Quantity); err != nil {
				return err
			}

			tr := models.Transfer{
				BusinessID:     sess.BusinessID,
				ProductID:      src.ID,
				SourceBranchID: req.SourceBranchID,
				DestBranchID:   req.DestBranchID,
				Quantity:       line.Quantity,
				Status:         models.TransferStatusPending,
			}
			if err := tx.Create(&tr).Error; err != nil {
				return err
			}
			result.Transfers = append(result.Transfers, tr)

			history := models.TransferHistory{
				BusinessID:     sess.BusinessID,
				TransferNumber: transferNumber,
				ProductID:      src.ID,
				ProductName:    src.Name,
				Quantity:       line.Quantity,
				UnitPrice:      src.RetailPrice,
				Total:          src.RetailPrice * line.Quantity,
				SourceBranchID: req.SourceBranchID,
				DestBranchID:   req.DestBranchID,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// upsertDestination: cari produk cabang tujuan dengan barcode yang sama;
// kalau ada, stoknya ditambah. Kalau tidak ada, baris baru dibuat meniru
// atribut statis produk asal dengan stok sebesar jumlah transfer.
// TODO: produk tanpa barcode selalu membuat baris baru di tujuan karena
// belum ada kunci pencocokan lain; transfer berulang menghasilkan duplikat.
func (s *Service) upsertDestination(tx *gorm.DB, businessID, destBranchID uint, src models.Product, qty float64) error {
	if src.Barcode != "" {
		var dest models.Product
		err := tx.
			Where("barcode = ? AND branch_id = ? AND business_id = ?", src.Barcode, destBranchID, businessID).
			First(&dest).Error
		if err == nil {
			return tx.Model(&models.Product{}).
				Where("id = ?", dest.ID).
				UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
	}

	dest := models.Product{
		BusinessID:   businessID,
		BranchID:     destBranchID,
		CategoryID:   src.CategoryID,
		Name:         src.Name,
		Barcode:      src.Barcode,
		Unit:         src.Unit,
		CostPrice:    src.CostPrice,
		RetailPrice:  src.RetailPrice,
		MemberPrice1: src.MemberPrice1,
		MemberPrice2: src.MemberPrice2,
		Stock:        qty,
	}
	return tx.Create(&dest).Error
}
