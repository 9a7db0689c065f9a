package server

import (
	"math"

	"github.com/lab1702/ofbot/game"
)

// SpatialGrid provides O(1) average case lookup for nearby players on the
// ground plane using a grid-based spatial hash. Touch and vision checks use
// it instead of comparing every pair of players.
type SpatialGrid struct {
	cellSize float64
	originX  float64
	originY  float64
	cols     int
	rows     int
	cells    [][]game.Handle
}

// GridCellSize is the size of each grid cell in world units.
// Must be at least TouchRadius so touching players are always in adjacent cells.
const GridCellSize = 512.0

// NewSpatialGrid creates a grid covering the rectangle from min to max
func NewSpatialGrid(min, max game.Vector) *SpatialGrid {
	cols := int(math.Ceil((max.X-min.X)/GridCellSize)) + 1
	rows := int(math.Ceil((max.Y-min.Y)/GridCellSize)) + 1

	cells := make([][]game.Handle, cols*rows)
	for i := range cells {
		cells[i] = make([]game.Handle, 0, 4)
	}

	return &SpatialGrid{
		cellSize: GridCellSize,
		originX:  min.X,
		originY:  min.Y,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear resets the grid for a new tick
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) cell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.originX) / g.cellSize))
	row = int(math.Floor((y - g.originY) / g.cellSize))
	return col, row
}

// cellIndex returns the cell index for a position, clamped to the grid
func (g *SpatialGrid) cellIndex(x, y float64) int {
	col, row := g.cell(x, y)
	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return row*g.cols + col
}

// Insert adds a player to the grid
func (g *SpatialGrid) Insert(h game.Handle, pos game.Vector) {
	idx := g.cellIndex(pos.X, pos.Y)
	g.cells[idx] = append(g.cells[idx], h)
}

// GetNearby returns players that might be within one cell of pos.
// The caller must still perform exact distance checks.
func (g *SpatialGrid) GetNearby(pos game.Vector) []game.Handle {
	return g.GetWithin(pos, g.cellSize)
}

// GetWithin returns players in every cell overlapping the square of the
// given radius around pos. The caller must still perform exact distance checks.
func (g *SpatialGrid) GetWithin(pos game.Vector, radius float64) []game.Handle {
	minCol, minRow := g.cell(pos.X-radius, pos.Y-radius)
	maxCol, maxRow := g.cell(pos.X+radius, pos.Y+radius)
	minCol, minRow = max(minCol, 0), max(minRow, 0)
	maxCol, maxRow = min(maxCol, g.cols-1), min(maxRow, g.rows-1)

	var result []game.Handle
	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			result = append(result, g.cells[r*g.cols+c]...)
		}
	}
	return result
}

// IndexPlayers populates the grid with all alive players
func (g *SpatialGrid) IndexPlayers(players []*Player) {
	g.Clear()
	for _, p := range players {
		if p.alive {
			g.Insert(p.handle, p.pos)
		}
	}
}
