package branch

import (
	"testing"

	"kasirpos-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveCentral(t *testing.T) {
	cases := []struct {
		name     string
		branches []models.Branch
		wantID   uint // 0 = nil
	}{
		{
			name: "flag is_central menang",
			branches: []models.Branch{
				{ID: 1, Name: "Cabang Lama"},
				{ID: 2, Name: "Toko Pusat", IsCentral: true},
				{ID: 3, Name: "Cabang Baru"},
			},
			wantID: 2,
		},
		{
			name: "tanpa flag, id terendah jadi pusat",
			branches: []models.Branch{
				{ID: 4, Name: "Toko Pertama"},
				{ID: 7, Name: "Cabang Timur"},
			},
			wantID: 4,
		},
		{
			name: "flag pertama yang dipakai kalau ada dua",
			branches: []models.Branch{
				{ID: 1, Name: "Pusat A", IsCentral: true},
				{ID: 2, Name: "Pusat B", IsCentral: true},
			},
			wantID: 1,
		},
		{
			name:     "tanpa cabang sama sekali",
			branches: nil,
			wantID:   0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			central := ResolveCentral(tc.branches)
			if tc.wantID == 0 {
				assert.Nil(t, central)
				return
			}
			assert.NotNil(t, central)
			assert.Equal(t, tc.wantID, central.ID)
		})
	}
}
