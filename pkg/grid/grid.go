package grid

// GetGridCoords returns the column and row of a linear index in a grid
// with cols columns.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// GetGridIndex is the inverse of GetGridCoords. Coordinates outside the
// grid wrap around within size cells.
func GetGridIndex(x, y, cols, size int) int {
	x = ((x % cols) + cols) % cols
	i := y*cols + x
	return ((i % size) + size) % size
}
