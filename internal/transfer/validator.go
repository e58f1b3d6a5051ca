package transfer

import (
	"fmt"

	"kasirpos-backend/internal/models"
)

// TransferLine: satu baris produk yang dipilih untuk dipindahkan.
type TransferLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type ExecuteRequest struct {
	SourceBranchID uint           `json:"source_branch_id"`
	DestBranchID   uint           `json:"dest_branch_id"`
	Lines          []TransferLine `json:"items"`
}

// ValidationError: penolakan pre-flight dengan pesan yang langsung
// bisa ditampilkan ke user. Tidak ada write yang terjadi sebelumnya.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validate memeriksa request transfer sebelum ada mutasi apa pun.
// products: baris produk cabang asal, key = product id. Murni, tanpa
// efek samping.
func Validate(req *ExecuteRequest, products map[uint]models.Product) error {
	if req.SourceBranchID == 0 || req.DestBranchID == 0 {
		return &ValidationError{Reason: "Cabang asal dan tujuan harus dipilih"}
	}
	if req.SourceBranchID == req.DestBranchID {
		return &ValidationError{Reason: "Cabang asal dan tujuan tidak boleh sama"}
	}
	if len(req.Lines) == 0 {
		return &ValidationError{Reason: "Pilih minimal satu produk"}
	}

	for _, line := range req.Lines {
		p, ok := products[line.ProductID]
		if !ok {
			return &ValidationError{Reason: fmt.Sprintf("Produk %d tidak ditemukan di cabang asal", line.ProductID)}
		}
		if line.Quantity <= 0 {
			return &ValidationError{Reason: fmt.Sprintf("Jumlah transfer %s harus lebih dari 0", p.Name)}
		}
		if line.Quantity > p.Stock {
			return &ValidationError{Reason: fmt.Sprintf("Stok %s tidak mencukupi (tersedia %.0f)", p.Name, p.Stock)}
		}
	}

	return nil
}
