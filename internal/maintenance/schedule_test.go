package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/internal/model"
)

func TestNormalizeServiceName(t *testing.T) {
	assert.Equal(t, "Oil Change", NormalizeServiceName("  oil   change "))
	assert.Equal(t, "General Inspection", NormalizeServiceName("GENERAL INSPECTION"))
	assert.Equal(t, "Tire Rotation", NormalizeServiceName("tire rotation"))
}

func TestCompleteService_Recurring(t *testing.T) {
	service := &model.ScheduledService{
		ID:            uuid.New(),
		VehicleID:     uuid.New(),
		UserID:        uuid.New(),
		Name:          "Oil Change",
		Description:   "synthetic",
		ScheduledDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Cost:          dec("250.00"),
	}
	at := time.Date(2026, 2, 3, 15, 0, 0, 0, time.UTC)

	next, err := CompleteService(context.Background(), service, at)
	require.NoError(t, err)
	assert.True(t, service.Completed)
	require.NotNil(t, service.CompletedAt)
	assert.Equal(t, at, *service.CompletedAt)

	require.NotNil(t, next)
	assert.False(t, next.Completed)
	assert.Equal(t, time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), next.ScheduledDate)
	assert.Equal(t, service.VehicleID, next.VehicleID)
	assert.Equal(t, service.UserID, next.UserID)
	assert.True(t, next.Cost.Equal(service.Cost))
	require.NotNil(t, next.PreviousServiceID)
	assert.Equal(t, service.ID, *next.PreviousServiceID)
	assert.Equal(t, ServiceStateScheduled, ServiceState(next))
}

func TestCompleteService_Inspection(t *testing.T) {
	service := &model.ScheduledService{Name: "General Inspection", ScheduledDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}

	next, err := CompleteService(context.Background(), service, time.Now())
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), next.ScheduledDate)
}

func TestCompleteService_NonRecurring(t *testing.T) {
	service := &model.ScheduledService{Name: "Tire Rotation", ScheduledDate: time.Now()}

	next, err := CompleteService(context.Background(), service, time.Now())
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, ServiceStateCompleted, ServiceState(service))
}

func TestCompleteService_AlreadyCompleted(t *testing.T) {
	service := &model.ScheduledService{Name: "Oil Change", Completed: true}

	next, err := CompleteService(context.Background(), service, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Nil(t, next)
}
