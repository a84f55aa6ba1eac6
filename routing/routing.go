// Package routing maps a classified complaint to the responsible department.
package routing

import "civicsense/types"

// Department names.
const (
	DeptSanitation  = "Sanitation & Waste"
	DeptRoads       = "Roads & Infrastructure"
	DeptWater       = "Water Supply"
	DeptElectricity = "Electricity"
	DeptSafety      = "Public Safety"
	DeptTraffic     = "Traffic & Transport"
	DeptOther       = "General Administration"
)

var categoryDepartments = map[types.Category]string{
	types.CategorySanitation:  DeptSanitation,
	types.CategoryRoadsInfra:  DeptRoads,
	types.CategoryWater:       DeptWater,
	types.CategoryElectricity: DeptElectricity,
	types.CategorySafety:      DeptSafety,
	types.CategoryTraffic:     DeptTraffic,
	types.CategoryOther:       DeptOther,
}

// Route returns the department for a category/urgency pair. Critical reports
// that are unclassified or already safety-labeled go straight to the
// emergency desk; every other category keeps its owning department even when
// critical, on the premise that the owning department is best equipped to
// respond.
func Route(category types.Category, urgency types.Urgency) string {
	if urgency == types.UrgencyCritical && (category == types.CategorySafety || category == types.CategoryOther) {
		return DeptSafety
	}

	if dept, ok := categoryDepartments[category]; ok {
		return dept
	}

	// Unknown category, fall back to the catch-all desk.
	return DeptOther
}
