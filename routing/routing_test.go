package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"civicsense/types"
)

func TestRouteIsTotalOverCategorySet(t *testing.T) {
	for _, category := range types.AllCategories {
		dept := Route(category, types.UrgencyLow)
		assert.NotEmpty(t, dept, "category %s must map to a department", category)
	}
}

func TestRouteUnknownCategoryFallsBack(t *testing.T) {
	assert.Equal(t, DeptOther, Route(types.Category("graffiti"), types.UrgencyMedium))
}

func TestRouteCriticalOverride(t *testing.T) {
	tests := []struct {
		name     string
		category types.Category
		urgency  types.Urgency
		want     string
	}{
		{"critical safety goes to emergency desk", types.CategorySafety, types.UrgencyCritical, DeptSafety},
		{"critical unclassified goes to emergency desk", types.CategoryOther, types.UrgencyCritical, DeptSafety},
		{"critical water stays with water department", types.CategoryWater, types.UrgencyCritical, DeptWater},
		{"critical electricity stays with electricity", types.CategoryElectricity, types.UrgencyCritical, DeptElectricity},
		{"non-critical other is general administration", types.CategoryOther, types.UrgencyHigh, DeptOther},
		{"medium sanitation", types.CategorySanitation, types.UrgencyMedium, DeptSanitation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.category, tt.urgency))
		})
	}
}
