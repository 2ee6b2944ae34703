package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxidesk/config"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage/memory"
)

func TestVehicleListWithoutCache(t *testing.T) {
	stg := memory.New()
	stg.SeedVehicles([]*models.Vehicle{
		{ID: 1, Name: "Maruti Dzire", Type: "Sedan", PricePerKm: 12, BaseFare: 50},
		{ID: 2, Name: "Bajaj Auto", Type: "Auto", PricePerKm: 8, BaseFare: 30},
	})
	svc := NewVehicleService(stg, nil, config.Config{}, logger.New("test"))

	vehicles, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "Sedan", vehicles[0].Type)
}
