package server

import "github.com/tannerfokkens-maker/MacintoshCraft/inventory"

// registerDefaultRecipes seeds the handful of recipes a minimal server
// needs to exercise the crafting matcher end to end; a full recipe book
// is out of scope the same way the full item registry is (§1).
func registerDefaultRecipes(m *inventory.Matcher) {
	m.Register(inventory.Recipe{
		Width: 1, Height: 2,
		Pattern: []int32{inventory.ItemOakPlanks, inventory.ItemOakPlanks},
		Result:  inventory.Stack{Item: inventory.ItemCraftingTable, Count: 1},
	})
	m.Register(inventory.Recipe{
		Shapeless: true,
		Pattern:   []int32{inventory.ItemOakPlanks, inventory.ItemOakPlanks},
		Result:    inventory.Stack{Item: inventory.ItemStick, Count: 4},
	})
}
