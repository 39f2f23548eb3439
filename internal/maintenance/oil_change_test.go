package maintenance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/internal/model"
)

var oilChangedAt = time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

func shortChangeAt10000(t *testing.T) *model.OilChange {
	t.Helper()
	change, err := RegisterChange(OilChangeInput{
		VehicleID: uuid.New(),
		UserID:    uuid.New(),
		Odometer:  10000,
		OilType:   model.OilTypeShort,
		ChangedAt: oilChangedAt,
		TotalCost: dec("180.00"),
	}, nil, nil, oilChangedAt.Add(time.Hour))
	require.NoError(t, err)
	return change
}

func TestRegisterChange_NextDue(t *testing.T) {
	change := shortChangeAt10000(t)
	assert.Equal(t, int64(15000), change.NextDueOdometer)
	assert.Equal(t, oilChangedAt.AddDate(0, 0, 180), change.NextDueDate)
	assert.Equal(t, int64(0), change.OdometerDelta)

	odometer, date := NextDue(20000, model.OilTypeLong, oilChangedAt)
	assert.Equal(t, int64(30000), odometer)
	assert.Equal(t, oilChangedAt.Add(OilChangeValidity), date)
}

func TestRegisterChange_Validation(t *testing.T) {
	now := oilChangedAt.Add(time.Hour)
	latest := int64Ptr(13000)

	_, err := RegisterChange(OilChangeInput{Odometer: 12000, OilType: model.OilTypeShort, ChangedAt: oilChangedAt}, nil, latest, now)
	assert.ErrorIs(t, err, ErrOdometerRegression)

	_, err = RegisterChange(OilChangeInput{Odometer: 14000, OilType: "7K", ChangedAt: oilChangedAt}, nil, latest, now)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = RegisterChange(OilChangeInput{Odometer: 14000, OilType: model.OilTypeLong, ChangedAt: now.Add(time.Hour)}, nil, latest, now)
	assert.ErrorIs(t, err, ErrFutureDate)

	_, err = RegisterChange(OilChangeInput{Odometer: 14000, OilType: model.OilTypeLong, ChangedAt: oilChangedAt, TotalCost: dec("-1")}, nil, latest, now)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = RegisterChange(OilChangeInput{Odometer: 14000, OilType: model.OilTypeLong, ChangedAt: oilChangedAt, TotalCost: dec("120.005")}, nil, latest, now)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = RegisterChange(OilChangeInput{Odometer: MaxOdometer + 1, OilType: model.OilTypeLong, ChangedAt: oilChangedAt}, nil, latest, now)
	assert.ErrorIs(t, err, ErrInvalidValue)

	change, err := RegisterChange(OilChangeInput{Odometer: 14000, OilType: model.OilTypeLong, ChangedAt: oilChangedAt}, nil, latest, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), change.OdometerDelta)
	assert.True(t, change.TotalCost.Equal(decimal.Zero))
}

func TestRegisterChange_NotDueYet(t *testing.T) {
	previous := shortChangeAt10000(t)
	at := oilChangedAt.AddDate(0, 0, 30)

	_, err := RegisterChange(OilChangeInput{Odometer: 12000, OilType: model.OilTypeShort, ChangedAt: at}, previous, int64Ptr(12000), at)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChangeNotDue)

	change, err := RegisterChange(OilChangeInput{Odometer: 14600, OilType: model.OilTypeShort, ChangedAt: at}, previous, int64Ptr(14000), at)
	require.NoError(t, err)
	assert.Equal(t, int64(19600), change.NextDueOdometer)
	assert.Equal(t, int64(600), change.OdometerDelta)

	// the date window alone is enough
	late := previous.NextDueDate.AddDate(0, 0, -10)
	_, err = RegisterChange(OilChangeInput{Odometer: 11000, OilType: model.OilTypeShort, ChangedAt: late}, previous, int64Ptr(11000), late)
	assert.NoError(t, err)
}

func TestCheckAlerts_Mileage(t *testing.T) {
	last := shortChangeAt10000(t)
	today := oilChangedAt.AddDate(0, 0, 10)

	assert.Empty(t, CheckAlerts(last, 14499, today))

	upcoming := CheckAlerts(last, 14600, today)
	require.Len(t, upcoming, 1)
	assert.Equal(t, AlertKindMileage, upcoming[0].Kind)
	assert.Equal(t, AlertLevelUpcoming, upcoming[0].Level)
	assert.Equal(t, int64(15000), upcoming[0].DueOdometer)
	assert.Contains(t, upcoming[0].Message, "15000")

	overdue := CheckAlerts(last, 15200, today)
	require.Len(t, overdue, 1)
	assert.Equal(t, AlertLevelOverdue, overdue[0].Level)
	assert.Equal(t, int64(200), overdue[0].ExcessKm)
	assert.Contains(t, overdue[0].Message, "200")
}

func TestCheckAlerts_Date(t *testing.T) {
	last := shortChangeAt10000(t)

	assert.Empty(t, CheckAlerts(last, 10100, last.NextDueDate.AddDate(0, 0, -31)))

	upcoming := CheckAlerts(last, 10100, last.NextDueDate.AddDate(0, 0, -30))
	require.Len(t, upcoming, 1)
	assert.Equal(t, AlertKindDate, upcoming[0].Kind)
	assert.Equal(t, AlertLevelUpcoming, upcoming[0].Level)

	overdue := CheckAlerts(last, 10100, last.NextDueDate.AddDate(0, 0, 5))
	require.Len(t, overdue, 1)
	assert.Equal(t, AlertLevelOverdue, overdue[0].Level)
	assert.Equal(t, 5, overdue[0].DaysOverdue)
	assert.Contains(t, overdue[0].Message, "5 days")
}

func TestCheckAlerts_BothMileageFirst(t *testing.T) {
	last := shortChangeAt10000(t)

	alerts := CheckAlerts(last, 15200, last.NextDueDate.AddDate(0, 0, 2))
	require.Len(t, alerts, 2)
	assert.Equal(t, AlertKindMileage, alerts[0].Kind)
	assert.Equal(t, AlertKindDate, alerts[1].Kind)
}

func TestCheckAlerts_NoPreviousChange(t *testing.T) {
	assert.Nil(t, CheckAlerts(nil, 99999, time.Now()))
}
