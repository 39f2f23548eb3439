package maintenance

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/internal/model"
)

var refuelNow = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestComputeRefuel_FirstEvent(t *testing.T) {
	in := RefuelInput{
		VehicleID:   uuid.New(),
		UserID:      uuid.New(),
		Odometer:    100,
		TotalLiters: dec("40"),
		LiterPrice:  dec("5.00"),
		RefueledAt:  refuelNow.Add(-time.Hour),
	}

	event, err := ComputeRefuel(in, RefuelHistory{}, refuelNow)
	require.NoError(t, err)
	assert.Equal(t, int64(0), event.DistanceSinceLast)
	assert.Equal(t, "200.00", event.TotalPaid.StringFixed(2))
	assert.False(t, event.FuelEconomy.Valid)
	assert.Equal(t, "200.00", event.CumulativeSpend.StringFixed(2))
	assert.Nil(t, event.DaysSincePrevious)
	assert.False(t, event.LitersPerDay.Valid)
	assert.Nil(t, event.KmPerDay)
}

func TestComputeRefuel_FollowUpEvent(t *testing.T) {
	previous := &model.RefuelEvent{
		Odometer:        100,
		TotalLiters:     dec("40"),
		TotalPaid:       dec("200.00"),
		CumulativeSpend: dec("200.00"),
		RefueledAt:      refuelNow.Add(-10 * 24 * time.Hour),
	}
	history := RefuelHistory{
		LatestOdometer:   int64Ptr(100),
		Previous:         previous,
		LatestRefueledAt: &previous.RefueledAt,
		TankCapacity:     50,
	}
	in := RefuelInput{Odometer: 500, TotalLiters: dec("30"), LiterPrice: dec("5.00"), RefueledAt: refuelNow}

	event, err := ComputeRefuel(in, history, refuelNow)
	require.NoError(t, err)
	assert.Equal(t, int64(400), event.DistanceSinceLast)
	assert.Equal(t, "150.00", event.TotalPaid.StringFixed(2))
	assert.Equal(t, "350.00", event.CumulativeSpend.StringFixed(2))

	// economy is measured against the fuel bought at the previous stop
	require.True(t, event.FuelEconomy.Valid)
	assert.Equal(t, "10.00", event.FuelEconomy.Decimal.StringFixed(2))

	require.NotNil(t, event.DaysSincePrevious)
	assert.Equal(t, int64(10), *event.DaysSincePrevious)
	require.True(t, event.LitersPerDay.Valid)
	assert.Equal(t, "3.00", event.LitersPerDay.Decimal.StringFixed(2))
	require.NotNil(t, event.KmPerDay)
	assert.Equal(t, int64(40), *event.KmPerDay)
}

func TestComputeRefuel_SameDayLeavesRatesEmpty(t *testing.T) {
	previous := &model.RefuelEvent{
		Odometer:        100,
		TotalLiters:     dec("20"),
		CumulativeSpend: dec("100.00"),
		RefueledAt:      refuelNow.Add(-2 * time.Hour),
	}
	history := RefuelHistory{LatestOdometer: int64Ptr(100), Previous: previous, LatestRefueledAt: &previous.RefueledAt}
	in := RefuelInput{Odometer: 150, TotalLiters: dec("10"), LiterPrice: dec("5"), RefueledAt: refuelNow}

	event, err := ComputeRefuel(in, history, refuelNow)
	require.NoError(t, err)
	require.NotNil(t, event.DaysSincePrevious)
	assert.Equal(t, int64(0), *event.DaysSincePrevious)
	assert.False(t, event.LitersPerDay.Valid)
	assert.Nil(t, event.KmPerDay)
	assert.Equal(t, "2.50", event.FuelEconomy.Decimal.StringFixed(2))
}

func TestComputeRefuel_Errors(t *testing.T) {
	latest := refuelNow.Add(-24 * time.Hour)
	history := RefuelHistory{LatestOdometer: int64Ptr(500), LatestRefueledAt: &latest, TankCapacity: 60}
	valid := RefuelInput{Odometer: 600, TotalLiters: dec("30"), LiterPrice: dec("5"), RefueledAt: refuelNow}

	tests := []struct {
		name   string
		mutate func(in *RefuelInput)
		kind   error
		field  string
	}{
		{"negative odometer", func(in *RefuelInput) { in.Odometer = -5 }, ErrInvalidValue, "odometer"},
		{"zero liters", func(in *RefuelInput) { in.TotalLiters = decimal.Zero }, ErrInvalidValue, "total_liters"},
		{"negative price", func(in *RefuelInput) { in.LiterPrice = dec("-1") }, ErrInvalidValue, "liter_price"},
		{"over tank capacity", func(in *RefuelInput) { in.TotalLiters = dec("61") }, ErrInvalidValue, "total_liters"},
		{"future date", func(in *RefuelInput) { in.RefueledAt = refuelNow.Add(time.Minute) }, ErrFutureDate, "refueled_at"},
		{"before latest refuel", func(in *RefuelInput) { in.RefueledAt = latest.Add(-time.Hour) }, ErrOutOfOrderDate, "refueled_at"},
		{"odometer regression", func(in *RefuelInput) { in.Odometer = 499 }, ErrOdometerRegression, "odometer"},
		{"odometer above limit", func(in *RefuelInput) { in.Odometer = MaxOdometer + 1 }, ErrInvalidValue, "odometer"},
		{"regression before chronology", func(in *RefuelInput) {
			in.Odometer = 499
			in.RefueledAt = latest.Add(-time.Hour)
		}, ErrOdometerRegression, "odometer"},
		{"liters with three decimals", func(in *RefuelInput) { in.TotalLiters = dec("3.333") }, ErrInvalidValue, "total_liters"},
		{"price with three decimals", func(in *RefuelInput) { in.LiterPrice = dec("5.999") }, ErrInvalidValue, "liter_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			_, err := ComputeRefuel(in, history, refuelNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestComputeRefuel_StoredPrecisionMatchesTotal(t *testing.T) {
	in := RefuelInput{Odometer: 100, TotalLiters: dec("3.330"), LiterPrice: dec("6.00"), RefueledAt: refuelNow}

	event, err := ComputeRefuel(in, RefuelHistory{}, refuelNow)
	require.NoError(t, err)
	assert.Equal(t, "19.98", event.TotalPaid.StringFixed(2))
	assert.True(t, event.TotalLiters.Equal(event.TotalLiters.Truncate(2)))
}

func TestComputeRefuel_EconomyOutOfRange(t *testing.T) {
	previous := &model.RefuelEvent{
		Odometer:    0,
		TotalLiters: dec("0.01"),
		RefueledAt:  refuelNow.Add(-48 * time.Hour),
	}
	history := RefuelHistory{LatestOdometer: int64Ptr(0), Previous: previous, LatestRefueledAt: &previous.RefueledAt}
	in := RefuelInput{Odometer: MaxOdometer, TotalLiters: dec("40"), LiterPrice: dec("5"), RefueledAt: refuelNow}

	_, err := ComputeRefuel(in, history, refuelNow)
	require.Error(t, err)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "odometer", fe.Field)
}

func TestCheckCents(t *testing.T) {
	assert.NoError(t, CheckCents("cost", dec("10")))
	assert.NoError(t, CheckCents("cost", dec("10.50")))
	assert.NoError(t, CheckCents("cost", dec("10.500")))
	assert.ErrorIs(t, CheckCents("cost", dec("10.505")), ErrInvalidValue)
}

func TestTotalPaid(t *testing.T) {
	assert.Equal(t, "999.99", TotalPaid(dec("500"), dec("10")).StringFixed(2))
	assert.Equal(t, "999.99", TotalPaid(dec("200"), dec("5")).StringFixed(2))
	assert.Equal(t, "999.90", TotalPaid(dec("199.98"), dec("5")).StringFixed(2))
	assert.Equal(t, "34.99", TotalPaid(dec("10.5"), dec("3.333")).StringFixed(2))
	assert.True(t, TotalPaid(decimal.Zero, dec("5")).IsZero())
}

func TestCumulativeSpend_Chain(t *testing.T) {
	paid := []string{"120.50", "80.25", "999.99", "10.00"}

	var previous *model.RefuelEvent
	running := decimal.Zero
	for _, p := range paid {
		spend := CumulativeSpend(previous, dec(p))
		running = running.Add(dec(p))
		assert.True(t, running.Equal(spend), "want %s got %s", running, spend)
		previous = &model.RefuelEvent{CumulativeSpend: spend}
	}
	assert.Equal(t, "1210.74", previous.CumulativeSpend.StringFixed(2))
}

func TestFuelEconomy(t *testing.T) {
	assert.False(t, FuelEconomy(300, nil).Valid)
	assert.False(t, FuelEconomy(300, &model.RefuelEvent{TotalLiters: decimal.Zero}).Valid)

	economy := FuelEconomy(100, &model.RefuelEvent{TotalLiters: dec("3")})
	require.True(t, economy.Valid)
	assert.Equal(t, "33.33", economy.Decimal.StringFixed(2))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(0), DaysBetween(start, start.Add(23*time.Hour)))
	assert.Equal(t, int64(1), DaysBetween(start, start.Add(25*time.Hour)))
	assert.Equal(t, int64(31), DaysBetween(start, start.AddDate(0, 1, 0)))
}

func TestPredictNextRefuel(t *testing.T) {
	latest := &model.RefuelEvent{
		RefueledAt:   time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
		LitersPerDay: decimal.NewNullDecimal(dec("3.00")),
	}

	next := PredictNextRefuel(latest, 50)
	require.NotNil(t, next)
	assert.Equal(t, time.Date(2026, 4, 17, 8, 0, 0, 0, time.UTC), *next)

	assert.Nil(t, PredictNextRefuel(latest, 0))
	assert.Nil(t, PredictNextRefuel(nil, 50))
	assert.Nil(t, PredictNextRefuel(&model.RefuelEvent{RefueledAt: latest.RefueledAt}, 50))
	assert.Nil(t, PredictNextRefuel(&model.RefuelEvent{LitersPerDay: decimal.NewNullDecimal(decimal.Zero)}, 50))
}
