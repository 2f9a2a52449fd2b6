package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumeirei/hotel-management/internal/models"
)

func TestOperationLogRepository_CreateAndListRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOperationLogRepository(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		target := int64(i)
		err := repo.Create(ctx, &models.OperationLog{
			UserID:   1,
			Username: "admin",
			Module:   "reservas",
			Action:   "delete",
			TargetID: &target,
			Method:   "GET",
			Path:     "/eliminar_reserva",
			Params:   models.JSON{"id": i},
			IP:       "127.0.0.1",
		})
		require.NoError(t, err)
	}

	logs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(3), *logs[0].TargetID)
	assert.Equal(t, float64(3), logs[0].Params["id"])
}
