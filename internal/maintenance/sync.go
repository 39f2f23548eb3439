package maintenance

import "maintenance-service/internal/model"

// Cascade lists the rows whose odometer baseline falls behind a corrected
// ledger value. Only the odometer column moves; derived figures stay as they
// were computed.
type Cascade struct {
	Value        int64
	RefuelIDs    []int64
	OilChangeIDs []int64
}

func (c Cascade) Empty() bool {
	return len(c.RefuelIDs) == 0 && len(c.OilChangeIDs) == 0
}

func (c Cascade) Size() int {
	return len(c.RefuelIDs) + len(c.OilChangeIDs)
}

// PlanCascade selects every refuel and oil change with an odometer strictly
// below newValue.
func PlanCascade(refuels []model.RefuelEvent, changes []model.OilChange, newValue int64) Cascade {
	plan := Cascade{Value: newValue}
	for _, r := range refuels {
		if r.Odometer < newValue {
			plan.RefuelIDs = append(plan.RefuelIDs, r.ID)
		}
	}
	for _, c := range changes {
		if c.Odometer < newValue {
			plan.OilChangeIDs = append(plan.OilChangeIDs, c.ID)
		}
	}
	return plan
}
