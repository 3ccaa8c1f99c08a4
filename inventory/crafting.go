package inventory

// Recipe is a crafting recipe matched against either a 2x2 (player
// inventory) or 3x3 (crafting table) grid.
//
// A shaped recipe's Pattern cells use 0 for "must be empty"; it only
// matches a grid whose non-empty ingredients' bounding box is exactly
// Width x Height, anchored there (vanilla's "shrink to bounding box"
// rule) so the recipe can be registered once and match at any offset
// within a larger grid.
//
// A shapeless recipe (Shapeless true) ignores Width/Height/position
// entirely: Pattern is just the multiset of required ingredients, and
// it matches any grid whose non-empty stacks are that same multiset in
// any arrangement.
type Recipe struct {
	Width, Height int
	Pattern       []int32 // len == Width*Height, item IDs or 0
	Shapeless     bool
	Result        Stack
}

// Matcher holds the registered recipes and resolves a crafting grid to
// its result, if any (§4.6 "crafting matcher").
type Matcher struct {
	recipes []Recipe
}

// NewMatcher returns a matcher with no recipes registered.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Register adds r to the matcher's recipe table.
func (m *Matcher) Register(r Recipe) {
	m.recipes = append(m.recipes, r)
}

// Match2x2 resolves the player inventory's built-in 2x2 crafting grid.
func (m *Matcher) Match2x2(grid [4]Stack) (Stack, bool) {
	return m.match(2, 2, grid[:])
}

// Match3x3 resolves a crafting table's 3x3 grid.
func (m *Matcher) Match3x3(grid [9]Stack) (Stack, bool) {
	return m.match(3, 3, grid[:])
}

func (m *Matcher) match(width, height int, grid []Stack) (Stack, bool) {
	minX, minY, maxX, maxY, any := boundingBox(width, height, grid)
	if !any {
		return Stack{}, false
	}
	bw := maxX - minX + 1
	bh := maxY - minY + 1

	for _, r := range m.recipes {
		if r.Shapeless {
			if matchesShapeless(r, grid) {
				return r.Result, true
			}
			continue
		}
		if r.Width != bw || r.Height != bh {
			continue
		}
		if matchesAt(r, grid, width, minX, minY, bw, bh) {
			return r.Result, true
		}
	}
	return Stack{}, false
}

// matchesShapeless compares the multiset of a shapeless recipe's
// non-zero Pattern entries against the multiset of the grid's
// non-empty stacks, independent of position.
func matchesShapeless(r Recipe, grid []Stack) bool {
	want := ingredientCounts(r.Pattern)
	got := make(map[int32]int, len(want))
	for _, s := range grid {
		if s.Empty() {
			continue
		}
		got[s.Item]++
	}
	if len(want) != len(got) {
		return false
	}
	for item, n := range want {
		if got[item] != n {
			return false
		}
	}
	return true
}

func ingredientCounts(pattern []int32) map[int32]int {
	counts := make(map[int32]int)
	for _, item := range pattern {
		if item == 0 {
			continue
		}
		counts[item]++
	}
	return counts
}

func boundingBox(width, height int, grid []Stack) (minX, minY, maxX, maxY int, any bool) {
	minX, minY = width, height
	maxX, maxY = -1, -1
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if grid[y*width+x].Empty() {
				continue
			}
			any = true
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	return
}

func matchesAt(r Recipe, grid []Stack, gridWidth, offX, offY, bw, bh int) bool {
	for ry := 0; ry < bh; ry++ {
		for rx := 0; rx < bw; rx++ {
			want := r.Pattern[ry*r.Width+rx]
			got := grid[(offY+ry)*gridWidth+(offX+rx)]
			if want == 0 {
				if !got.Empty() {
					return false
				}
				continue
			}
			if got.Empty() || got.Item != want {
				return false
			}
		}
	}
	return true
}
