package presentation

import (
	"fmt"

	"github.com/beevik/etree"
)

// Table is an a:tbl element.
type Table struct {
	el *etree.Element
}

// Rows returns the number of a:tr rows.
func (t *Table) Rows() int {
	return len(children(t.el, NsA, "tr"))
}

// Columns returns the number of grid columns.
func (t *Table) Columns() int {
	return len(children(child(t.el, NsA, "tblGrid"), NsA, "gridCol"))
}

// Grid returns every cell, row by row.
func (t *Table) Grid() [][]*Cell {
	var grid [][]*Cell
	for r, tr := range children(t.el, NsA, "tr") {
		var row []*Cell
		for c, tc := range children(tr, NsA, "tc") {
			row = append(row, &Cell{el: tc, row: r, col: c})
		}
		grid = append(grid, row)
	}
	return grid
}

// Cell returns the cell at 0-based row and column. Indices outside the
// table are rejected, negative ones included.
func (t *Table) Cell(row, col int) (*Cell, error) {
	rows := children(t.el, NsA, "tr")
	if row < 0 || row >= len(rows) {
		return nil, fmt.Errorf("%w: row %d (table has %d rows)", ErrCellOutOfRange, row, len(rows))
	}
	cells := children(rows[row], NsA, "tc")
	if col < 0 || col >= len(cells) {
		return nil, fmt.Errorf("%w: column %d (row has %d cells)", ErrCellOutOfRange, col, len(cells))
	}
	return &Cell{el: cells[col], row: row, col: col}, nil
}

// Cell is an a:tc element.
type Cell struct {
	el  *etree.Element
	row int
	col int
}

// Row returns the 0-based row of the cell.
func (c *Cell) Row() int {
	return c.row
}

// Column returns the 0-based column of the cell.
func (c *Cell) Column() int {
	return c.col
}

// Merged reports whether the cell is covered by a horizontal or vertical
// merge and therefore not rendered on its own.
func (c *Cell) Merged() bool {
	return c.el.SelectAttrValue("hMerge", "") == "1" || c.el.SelectAttrValue("vMerge", "") == "1"
}

// TextBody returns the cell's text container, creating it when absent.
func (c *Cell) TextBody() *TextBody {
	if tb := child(c.el, NsA, "txBody"); tb != nil {
		return &TextBody{el: tb}
	}
	txBody := newA(c.el, "txBody")
	txBody.AddChild(newA(c.el, "bodyPr"))
	txBody.AddChild(newA(c.el, "lstStyle"))
	txBody.AddChild(newA(c.el, "p"))
	c.el.InsertChildAt(0, txBody)
	return &TextBody{el: txBody}
}

// Text returns the cell text without creating a text container.
func (c *Cell) Text() string {
	tb := child(c.el, NsA, "txBody")
	if tb == nil {
		return ""
	}
	return (&TextBody{el: tb}).Text()
}
