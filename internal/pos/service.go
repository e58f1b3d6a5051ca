package pos

import (
	"fmt"
	"time"

	"kasirpos-backend/internal/auth"
	"kasirpos-backend/internal/models"

	"gorm.io/gorm"
)

type CheckoutLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	PriceTier string  `json:"price_tier"` // "" | "retail" | "member1" | "member2"
}

type CheckoutRequest struct {
	BranchID *uint                `json:"branch_id"` // untuk owner
	Lines    []CheckoutLine       `json:"items"`
	Payment  float64              `json:"payment"`
	Method   models.PaymentMethod `json:"method"`
}

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func unitPrice(p models.Product, tier string) float64 {
	switch tier {
	case "member1":
		if p.MemberPrice1 > 0 {
			return p.MemberPrice1
		}
	case "member2":
		if p.MemberPrice2 > 0 {
			return p.MemberPrice2
		}
	}
	return p.RetailPrice
}

// Checkout: satu transaksi kasir. Decrement stok dijaga predikat
// stock >= qty, Sale + item + movement kas ditulis dalam satu
// transaksi database.
func (s *Service) Checkout(sess *auth.Session, branchID uint, req *CheckoutRequest) (*models.Sale, error) {
	if len(req.Lines) == 0 {
		return nil, &ValidationError{Reason: "Keranjang masih kosong"}
	}

	switch req.Method {
	case models.PaymentCash, models.PaymentDebit, models.PaymentQRIS:
		// ok
	default:
		return nil, &ValidationError{Reason: "Metode pembayaran tidak valid (cash|debit|qris)"}
	}

	ids := make([]uint, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, &ValidationError{Reason: "Jumlah item harus lebih dari 0"}
		}
		ids = append(ids, line.ProductID)
	}

	var products []models.Product
	if err := s.db.
		Where("id IN ? AND branch_id = ? AND business_id = ?", ids, branchID, sess.BusinessID).
		Find(&products).Error; err != nil {
		return nil, err
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	var total float64
	items := make([]models.SaleItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		p, ok := productByID[line.ProductID]
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("Produk %d tidak ditemukan di cabang ini", line.ProductID)}
		}
		if line.Quantity > p.Stock {
			return nil, &ValidationError{Reason: fmt.Sprintf("Stok %s tidak mencukupi (tersedia %.0f)", p.Name, p.Stock)}
		}

		price := unitPrice(p, line.PriceTier)
		subtotal := price * line.Quantity
		total += subtotal

		items = append(items, models.SaleItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   price,
			Subtotal:    subtotal,
		})
	}

	if req.Payment < total {
		return nil, &ValidationError{Reason: fmt.Sprintf("Pembayaran kurang: total %.0f, diterima %.0f", total, req.Payment)}
	}

	now := time.Now()
	sale := &models.Sale{
		BusinessID:    sess.BusinessID,
		BranchID:      branchID,
		UserID:        sess.UserID,
		InvoiceNumber: fmt.Sprintf("INV-%d", now.UnixMilli()),
		Date:          now,
		Total:         total,
		Payment:       req.Payment,
		Change:        req.Payment - total,
		Method:        req.Method,
		Items:         items,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range req.Lines {
			p := productByID[line.ProductID]
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", p.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &ValidationError{Reason: fmt.Sprintf("Stok %s tidak mencukupi", p.Name)}
			}
		}

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		// Penjualan langsung masuk buku kas
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		mov := models.CashMovement{
			BusinessID:  sess.BusinessID,
			BranchID:    branchID,
			Date:        day,
			Direction:   models.CashIn,
			Amount:      total,
			Description: "Penjualan " + sale.InvoiceNumber,
			RefType:     "sale",
			RefID:       sale.ID,
		}
		return tx.Create(&mov).Error
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}
