package transfer

import (
	"fmt"

	"kasirpos-backend/internal/models"
)

// HistoryEntry: satu baris riwayat transfer untuk tampilan. BatchNumber
// dihitung ulang setiap kali dibaca (pengelompokan per tanggal kalender),
// tidak disimpan.
type HistoryEntry struct {
	ID             uint    `json:"id"`
	TransferNumber string  `json:"transfer_number"`
	BatchNumber    string  `json:"batch_number"`
	ProductID      uint    `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Quantity       float64 `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	Total          float64 `json:"total"`
	SourceBranchID uint    `json:"source_branch_id"`
	DestBranchID   uint    `json:"dest_branch_id"`
	Timestamp      string  `json:"timestamp"`
}

// ListHistory: riwayat transfer terurut terbaru dulu. filterBranchID
// opsional; entri ikut kalau cabang cocok sebagai asal ATAU tujuan.
func (s *Service) ListHistory(businessID uint, filterBranchID *uint) ([]HistoryEntry, error) {
	q := s.db.
		Where("business_id = ?", businessID).
		Order("created_at DESC, id DESC")

	if filterBranchID != nil {
		q = q.Where("source_branch_id = ? OR dest_branch_id = ?", *filterBranchID, *filterBranchID)
	}

	var rows []models.TransferHistory
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	// Entri pada tanggal kalender yang sama berbagi nomor batch
	entries := make([]HistoryEntry, 0, len(rows))
	batchNo := 0
	lastDate := ""
	for _, r := range rows {
		date := r.CreatedAt.Format("2006-01-02")
		if date != lastDate {
			batchNo++
			lastDate = date
		}

		entries = append(entries, HistoryEntry{
			ID:             r.ID,
			TransferNumber: r.TransferNumber,
			BatchNumber:    fmt.Sprintf("BATCH-%d", batchNo),
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			Quantity:       r.Quantity,
			UnitPrice:      r.UnitPrice,
			Total:          r.Total,
			SourceBranchID: r.SourceBranchID,
			DestBranchID:   r.DestBranchID,
			Timestamp:      r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return entries, nil
}
