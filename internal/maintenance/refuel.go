package maintenance

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"maintenance-service/internal/model"
)

var (
	totalPaidLimit = decimal.NewFromInt(1000)
	totalPaidCap   = decimal.RequireFromString("999.99")

	// metricLimit is the largest value a numeric(10,2) metric column holds.
	metricLimit = decimal.RequireFromString("99999999.99")
)

type RefuelInput struct {
	VehicleID   uuid.UUID
	UserID      uuid.UUID
	Odometer    int64
	TotalLiters decimal.Decimal
	LiterPrice  decimal.Decimal
	RefueledAt  time.Time
}

// RefuelHistory is what the calculator needs to know about earlier records of
// the same vehicle.
type RefuelHistory struct {
	// LatestOdometer is the last ledger value, nil for an empty ledger.
	LatestOdometer *int64
	// Previous is the most recently inserted refuel.
	Previous *model.RefuelEvent
	// LatestRefueledAt is the newest refuel timestamp on record.
	LatestRefueledAt *time.Time
	TankCapacity     int
}

// ComputeRefuel validates a refuel against the vehicle history and derives all
// metrics. Optional metrics that cannot be computed are left null.
func ComputeRefuel(in RefuelInput, history RefuelHistory, now time.Time) (*model.RefuelEvent, error) {
	if err := validateRefuelInput(in, history, now); err != nil {
		return nil, err
	}

	var distance int64
	if history.LatestOdometer != nil {
		distance = in.Odometer - *history.LatestOdometer
	}

	economy := FuelEconomy(distance, history.Previous)
	if economy.Valid && economy.Decimal.GreaterThan(metricLimit) {
		return nil, fieldError(ErrInvalidValue, "odometer",
			"distance of %d km on %s liters is out of range", distance, history.Previous.TotalLiters.String())
	}

	totalPaid := TotalPaid(in.TotalLiters, in.LiterPrice)

	event := &model.RefuelEvent{
		VehicleID:         in.VehicleID,
		UserID:            in.UserID,
		Odometer:          in.Odometer,
		LiterPrice:        in.LiterPrice,
		TotalLiters:       in.TotalLiters,
		TotalPaid:         totalPaid,
		RefueledAt:        in.RefueledAt,
		DistanceSinceLast: distance,
		FuelEconomy:       economy,
		CumulativeSpend:   CumulativeSpend(history.Previous, totalPaid),
	}

	if history.Previous != nil {
		days := DaysBetween(history.Previous.RefueledAt, in.RefueledAt)
		event.DaysSincePrevious = &days
		event.LitersPerDay = LitersPerDay(in.TotalLiters, days)
		event.KmPerDay = KmPerDay(distance, days)
	}

	return event, nil
}

func validateRefuelInput(in RefuelInput, history RefuelHistory, now time.Time) error {
	if err := checkOdometer("odometer", in.Odometer); err != nil {
		return err
	}
	if history.LatestOdometer != nil && in.Odometer < *history.LatestOdometer {
		return fieldError(ErrOdometerRegression, "odometer",
			"odometer (%d) cannot be lower than the last recorded value (%d)", in.Odometer, *history.LatestOdometer)
	}
	if !in.TotalLiters.IsPositive() {
		return fieldError(ErrInvalidValue, "total_liters", "total liters must be greater than zero")
	}
	if err := CheckCents("total_liters", in.TotalLiters); err != nil {
		return err
	}
	if !in.LiterPrice.IsPositive() {
		return fieldError(ErrInvalidValue, "liter_price", "liter price must be greater than zero")
	}
	if err := CheckCents("liter_price", in.LiterPrice); err != nil {
		return err
	}
	if history.TankCapacity > 0 && in.TotalLiters.GreaterThan(decimal.NewFromInt(int64(history.TankCapacity))) {
		return fieldError(ErrInvalidValue, "total_liters",
			"total liters (%s) exceeds the tank capacity (%d)", in.TotalLiters.String(), history.TankCapacity)
	}
	if in.RefueledAt.After(now) {
		return fieldError(ErrFutureDate, "refueled_at", "refuels cannot be registered with a future date")
	}
	if history.LatestRefueledAt != nil && in.RefueledAt.Before(*history.LatestRefueledAt) {
		return fieldError(ErrOutOfOrderDate, "refueled_at",
			"refuels cannot be dated before the last registered refuel (%s)", history.LatestRefueledAt.Format("02/01/2006 15:04"))
	}
	return nil
}

// TotalPaid is liters times price, truncated to cents and capped at 999.99.
func TotalPaid(liters, price decimal.Decimal) decimal.Decimal {
	if liters.IsZero() || price.IsZero() {
		return decimal.Zero
	}
	total := liters.Mul(price).Truncate(2)
	if total.GreaterThanOrEqual(totalPaidLimit) {
		return totalPaidCap
	}
	return total
}

// FuelEconomy divides the distance by the volume of the previous refuel, the
// fuel that was actually burned to cover that distance.
func FuelEconomy(distance int64, previous *model.RefuelEvent) decimal.NullDecimal {
	if previous == nil || !previous.TotalLiters.IsPositive() {
		return decimal.NullDecimal{}
	}
	economy := decimal.NewFromInt(distance).Div(previous.TotalLiters).Truncate(2)
	return decimal.NewNullDecimal(economy)
}

// DaysBetween counts whole days from previous to current.
func DaysBetween(previous, current time.Time) int64 {
	return int64(math.Floor(current.Sub(previous).Hours() / 24))
}

func LitersPerDay(liters decimal.Decimal, days int64) decimal.NullDecimal {
	if days <= 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(liters.Div(decimal.NewFromInt(days)).Truncate(2))
}

func KmPerDay(distance, days int64) *int64 {
	if distance <= 0 || days <= 0 {
		return nil
	}
	kmPerDay := distance / days
	return &kmPerDay
}

func CumulativeSpend(previous *model.RefuelEvent, totalPaid decimal.Decimal) decimal.Decimal {
	if previous == nil {
		return totalPaid
	}
	return previous.CumulativeSpend.Add(totalPaid)
}

// PredictNextRefuel estimates when the tank runs dry at the latest daily
// consumption rate.
func PredictNextRefuel(latest *model.RefuelEvent, tankCapacity int) *time.Time {
	if latest == nil || tankCapacity <= 0 || !latest.LitersPerDay.Valid || !latest.LitersPerDay.Decimal.IsPositive() {
		return nil
	}
	days := decimal.NewFromInt(int64(tankCapacity)).Div(latest.LitersPerDay.Decimal).IntPart()
	next := latest.RefueledAt.Add(time.Duration(days) * 24 * time.Hour)
	return &next
}
