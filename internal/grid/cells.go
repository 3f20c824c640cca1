package grid

import (
	"fmt"
	"sort"

	"sprite-splitter/pkg/geometry"

	"gocv.io/x/gocv"
)

// Cell is a single sprite cell cut out of a sheet.
type Cell struct {
	Image  gocv.Mat         // owned BGR clone of the sheet region
	Bounds geometry.RectInt // position in sheet coordinates
	Row    int              // grid row, top to bottom from 0
	Col    int              // position within the row, left to right from 0
}

// Close releases the cell's pixel data.
func (c *Cell) Close() {
	c.Image.Close()
}

// CloseCells releases every cell in the slice.
func CloseCells(cells []Cell) {
	for i := range cells {
		cells[i].Close()
	}
}

// ExtractCells cuts the sheet into cells using detected line evidence. The
// evidence is inverted so the enclosed regions become foreground, then each
// external contour's bounding rectangle becomes a candidate cell. Candidates
// smaller than MinCellSize in either dimension are dropped. Cells come back
// sorted top-to-bottom, left-to-right, with rows assigned greedily: a cell
// whose top edge differs from the current row's by more than RowTolerance
// opens a new row.
//
// A sheet with no line evidence at all yields no cells. Without the guard
// the inverted mask would be a single foreground region covering the whole
// sheet; a grid that cannot be seen is a detection failure, not one giant
// cell.
func ExtractCells(img gocv.Mat, evidence *LineEvidence, opts Options) ([]Cell, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty input matrix")
	}
	if evidence == nil || evidence.Combined.Empty() {
		return nil, fmt.Errorf("no line evidence")
	}
	if gocv.CountNonZero(evidence.Combined) == 0 {
		return nil, nil
	}

	// Grid lines are foreground in the evidence; invert so the cell regions
	// between them are what the contour walk finds.
	inverted := gocv.NewMat()
	defer inverted.Close()
	gocv.BitwiseNot(evidence.Combined, &inverted)

	contours := gocv.FindContours(inverted, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	bounds := make([]geometry.RectInt, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		r := geometry.FromImageRect(gocv.BoundingRect(contours.At(i)))
		if r.Width >= opts.MinCellSize && r.Height >= opts.MinCellSize {
			bounds = append(bounds, r)
		}
	}
	if len(bounds) == 0 {
		return nil, nil
	}

	// Reading order: top-to-bottom, then left-to-right
	sort.Slice(bounds, func(i, j int) bool {
		if bounds[i].Y != bounds[j].Y {
			return bounds[i].Y < bounds[j].Y
		}
		return bounds[i].X < bounds[j].X
	})

	cells := make([]Cell, 0, len(bounds))
	currentRow := 0
	currentY := bounds[0].Y
	colInRow := 0
	for _, r := range bounds {
		if abs(r.Y-currentY) > opts.RowTolerance {
			currentRow++
			currentY = r.Y
			colInRow = 0
		}

		region := img.Region(r.ToImageRect())
		cellMat := region.Clone()
		region.Close()

		cells = append(cells, Cell{
			Image:  cellMat,
			Bounds: r,
			Row:    currentRow,
			Col:    colInRow,
		})
		colInRow++
	}

	return cells, nil
}

// RowCount returns the number of distinct rows in an extracted cell slice.
func RowCount(cells []Cell) int {
	maxRow := -1
	for _, c := range cells {
		if c.Row > maxRow {
			maxRow = c.Row
		}
	}
	return maxRow + 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
