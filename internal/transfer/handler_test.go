package transfer

import (
	"encoding/json"
	"testing"
	"time"

	"kasirpos-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTransferResponseOmitsAssociations(t *testing.T) {
	tr := models.Transfer{
		ID:             12,
		BusinessID:     1,
		ProductID:      3,
		Product:        models.Product{ID: 3, Name: "Gula 1kg"},
		SourceBranchID: 1,
		SourceBranch:   models.Branch{ID: 1, Name: "Toko Pusat"},
		DestBranchID:   2,
		Quantity:       20,
		Status:         models.TransferStatusPending,
		CreatedAt:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	res := toTransferResponse(tr, "TRF-1756548000000")
	assert.Equal(t, uint(12), res.ID)
	assert.Equal(t, "TRF-1756548000000", res.TransferNumber)
	assert.Equal(t, models.TransferStatusPending, res.Status)
	assert.Equal(t, "2026-08-30 10:00:00", res.CreatedAt)

	raw, err := json.Marshal(res)
	assert.Nil(t, err)

	var payload map[string]any
	assert.Nil(t, json.Unmarshal(raw, &payload))

	// Hanya field tampilan snake_case, tanpa struct relasi gorm
	wantKeys := []string{
		"id", "transfer_number", "product_id", "source_branch_id",
		"dest_branch_id", "quantity", "status", "created_at",
	}
	assert.Len(t, payload, len(wantKeys))
	for _, k := range wantKeys {
		assert.Contains(t, payload, k)
	}
}
