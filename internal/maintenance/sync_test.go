package maintenance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"maintenance-service/internal/model"
)

func TestPlanCascade(t *testing.T) {
	refuels := []model.RefuelEvent{{ID: 1, Odometer: 900}, {ID: 2, Odometer: 1000}, {ID: 3, Odometer: 1100}}
	changes := []model.OilChange{{ID: 7, Odometer: 950}, {ID: 8, Odometer: 1200}}

	plan := PlanCascade(refuels, changes, 1000)
	assert.Equal(t, int64(1000), plan.Value)
	assert.Equal(t, []int64{1}, plan.RefuelIDs)
	assert.Equal(t, []int64{7}, plan.OilChangeIDs)
	assert.Equal(t, 2, plan.Size())
	assert.False(t, plan.Empty())
}

func TestPlanCascade_NothingStale(t *testing.T) {
	plan := PlanCascade([]model.RefuelEvent{{ID: 1, Odometer: 500}}, nil, 400)
	assert.True(t, plan.Empty())
	assert.Zero(t, plan.Size())
}
