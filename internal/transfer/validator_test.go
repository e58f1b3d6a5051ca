package transfer

import (
	"testing"

	"kasirpos-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	products := map[uint]models.Product{
		1: {ID: 1, Name: "Gula 1kg", Stock: 50},
		2: {ID: 2, Name: "Kopi Sachet", Stock: 5},
	}

	cases := []struct {
		name   string
		req    ExecuteRequest
		reason string // kosong = harus lolos
	}{
		{
			name:   "cabang asal kosong",
			req:    ExecuteRequest{SourceBranchID: 0, DestBranchID: 2, Lines: []TransferLine{{ProductID: 1, Quantity: 1}}},
			reason: "Cabang asal dan tujuan harus dipilih",
		},
		{
			name:   "cabang tujuan kosong",
			req:    ExecuteRequest{SourceBranchID: 1, DestBranchID: 0, Lines: []TransferLine{{ProductID: 1, Quantity: 1}}},
			reason: "Cabang asal dan tujuan harus dipilih",
		},
		{
			name:   "cabang sama",
			req:    ExecuteRequest{SourceBranchID: 1, DestBranchID: 1, Lines: []TransferLine{{ProductID: 1, Quantity: 1}}},
			reason: "Cabang asal dan tujuan tidak boleh sama",
		},
		{
			name:   "tanpa produk",
			req:    ExecuteRequest{SourceBranchID: 1, DestBranchID: 2},
			reason: "Pilih minimal satu produk",
		},
		{
			name:   "jumlah nol",
			req:    ExecuteRequest{SourceBranchID: 1, DestBranchID: 2, Lines: []TransferLine{{ProductID: 1, Quantity: 0}}},
			reason: "Jumlah transfer Gula 1kg harus lebih dari 0",
		},
		{
			name:   "melebihi stok",
			req:    ExecuteRequest{SourceBranchID: 1, DestBranchID: 2, Lines: []TransferLine{{ProductID: 2, Quantity: 10}}},
			reason: "Stok Kopi Sachet tidak mencukupi (tersedia 5)",
		},
		{
			name:   "produk tidak dikenal",
			req:    ExecuteRequest{SourceBranchID: 1, DestBranchID: 2, Lines: []TransferLine{{ProductID: 99, Quantity: 1}}},
			reason: "Produk 99 tidak ditemukan di cabang asal",
		},
		{
			name: "jumlah minimum",
			req:  ExecuteRequest{SourceBranchID: 1, DestBranchID: 2, Lines: []TransferLine{{ProductID: 1, Quantity: 1}}},
		},
		{
			name: "jumlah sama dengan stok",
			req:  ExecuteRequest{SourceBranchID: 1, DestBranchID: 2, Lines: []TransferLine{{ProductID: 1, Quantity: 50}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&tc.req, products)
			if tc.reason == "" {
				assert.Nil(t, err)
				return
			}

			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.reason, vErr.Reason)
		})
	}
}
