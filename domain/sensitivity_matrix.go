package domain

import "sort"

// SensitivityMatrix holds monthly payments by purchase price (rows) and
// annual rate (columns). Payments[i][j] belongs to Prices[i] and Rates[j].
type SensitivityMatrix struct {
	Prices      []int64   `json:"prices"`
	Rates       []float64 `json:"rates"`
	Payments    [][]int64 `json:"payments"`
	DownPayment float64   `json:"downPayment"`
	TermYears   int       `json:"termYears"`
}

// Cell returns the payment for the given row and column.
func (m SensitivityMatrix) Cell(row, col int) int64 {
	return m.Payments[row][col]
}

// Median returns the median cell value, averaging the two middle cells
// when the count is even. An empty matrix yields 0.
func (m SensitivityMatrix) Median() float64 {
	var cells []int64
	for _, row := range m.Payments {
		cells = append(cells, row...)
	}
	if len(cells) == 0 {
		return 0
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i] < cells[j] })

	mid := len(cells) / 2
	if len(cells)%2 == 1 {
		return float64(cells[mid])
	}
	return (float64(cells[mid-1]) + float64(cells[mid])) / 2
}
