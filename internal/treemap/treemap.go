// Package treemap partitions a rectangle into tiles with areas proportional
// to item weights, using the squarified treemap heuristic.
package treemap

import "math"

// Item is one weighted entry to lay out. Value must be positive; callers
// substitute a floor of 1 for zero or missing metrics before calling. Name
// and Color are passthrough display fields the layout does not interpret.
type Item struct {
	ID    string
	Value float64
	Name  string
	Color string
}

// Rect is an axis-aligned rectangle with X0 < X1 and Y0 < Y1.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// PositionedItem is an input item with its computed tile.
type PositionedItem struct {
	Item
	Rect
}

// Layout partitions container into one tile per item, each tile's area
// proportional to the item's Value. Tiles exactly cover the container with
// no overlaps. The heuristic processes items in the given order and favors
// near-square tiles; callers wanting the canonical largest-tile-first look
// pre-sort by descending Value.
//
// An empty item list or a container with non-positive width or height
// returns nil: that is a normal "nothing to draw" case, not an error.
func Layout(items []Item, container Rect) []PositionedItem {
	if len(items) == 0 || container.Width() <= 0 || container.Height() <= 0 {
		return nil
	}

	total := 0.0
	for _, item := range items {
		total += item.Value
	}
	if total <= 0 {
		return nil
	}

	// Scale values so they sum to the container's area.
	scale := container.Area() / total
	areas := make([]float64, len(items))
	for i, item := range items {
		areas[i] = item.Value * scale
	}

	positioned := make([]PositionedItem, 0, len(items))
	remaining := container
	start := 0
	for start < len(items) {
		end := rowEnd(areas, start, shorterSide(remaining))
		positioned = layRow(positioned, items, areas, start, end, &remaining)
		start = end
	}
	return positioned
}

func shorterSide(r Rect) float64 {
	return math.Min(r.Width(), r.Height())
}

// rowEnd grows a row starting at index start while adding the next item does
// not worsen the row's worst aspect ratio against the given side length.
func rowEnd(areas []float64, start int, side float64) int {
	end := start + 1
	rowSum := areas[start]
	rowMin := areas[start]
	rowMax := areas[start]
	worst := worstRatio(rowSum, rowMin, rowMax, side)

	for end < len(areas) {
		next := areas[end]
		sum := rowSum + next
		min := math.Min(rowMin, next)
		max := math.Max(rowMax, next)

		candidate := worstRatio(sum, min, max, side)
		if candidate > worst {
			break
		}
		rowSum, rowMin, rowMax, worst = sum, min, max, candidate
		end++
	}
	return end
}

// worstRatio is the classic squarify figure of merit: the worst aspect ratio
// any tile in the row would have if the row were laid along a side of the
// given length.
func worstRatio(sum, min, max, side float64) float64 {
	s2 := sum * sum
	w2 := side * side
	return math.Max(w2*max/s2, s2/(w2*min))
}

// layRow places items[start:end] along the shorter side of the remaining
// rectangle and shrinks it. The final row and the last tile of every row are
// flushed to the container edge so the tiling is exact.
func layRow(positioned []PositionedItem, items []Item, areas []float64, start, end int, remaining *Rect) []PositionedItem {
	rowSum := 0.0
	for i := start; i < end; i++ {
		rowSum += areas[i]
	}

	horizontal := remaining.Width() < remaining.Height()
	lastRow := end == len(items)

	if horizontal {
		// Row spans the full width; tiles are laid left to right.
		thickness := rowSum / remaining.Width()
		if lastRow {
			thickness = remaining.Height()
		}
		y1 := remaining.Y0 + thickness

		x := remaining.X0
		run := 0.0
		for i := start; i < end; i++ {
			run += areas[i]
			x1 := remaining.X0 + remaining.Width()*run/rowSum
			if i == end-1 {
				x1 = remaining.X1
			}
			positioned = append(positioned, PositionedItem{
				Item: items[i],
				Rect: Rect{X0: x, Y0: remaining.Y0, X1: x1, Y1: y1},
			})
			x = x1
		}
		remaining.Y0 = y1
		return positioned
	}

	// Column spans the full height; tiles are laid top to bottom.
	thickness := rowSum / remaining.Height()
	if lastRow {
		thickness = remaining.Width()
	}
	x1 := remaining.X0 + thickness

	y := remaining.Y0
	run := 0.0
	for i := start; i < end; i++ {
		run += areas[i]
		y1 := remaining.Y0 + remaining.Height()*run/rowSum
		if i == end-1 {
			y1 = remaining.Y1
		}
		positioned = append(positioned, PositionedItem{
			Item: items[i],
			Rect: Rect{X0: remaining.X0, Y0: y, X1: x1, Y1: y1},
		})
		y = y1
	}
	remaining.X0 = x1
	return positioned
}
