// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

import (
	"fmt"
)

// TablePrinter is useful for printing tables to the terminal.
type TablePrinter struct {
	widths        []uint
	cells         [][]cell
	enableEscapes bool
}

// cell pairs the text of a table cell with an (optional) formatting escape.
type cell struct {
	text   string
	escape string
}

// NewTablePrinter constructs a new table with given dimensions.
func NewTablePrinter(width uint, height uint) *TablePrinter {
	widths := make([]uint, width)
	cells := make([][]cell, height)
	// Construct the table
	for i := uint(0); i < height; i++ {
		cells[i] = make([]cell, width)
	}
	//
	return &TablePrinter{widths, cells, true}
}

// Set the contents of a given cell in this table.
func (p *TablePrinter) Set(col uint, row uint, val string) {
	p.widths[col] = max(p.widths[col], uint(len(val)))
	p.cells[row][col].text = val
}

// Get the contents of a given cell in this table.
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.cells[row][col].text
}

// Height returns the height of this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.cells))
}

// SetEscape sets the formatting to use when printing a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.cells[row][col].escape = escape.Build()
}

// SetRowEscape sets the formatting to use when printing an entire row.
func (p *TablePrinter) SetRowEscape(row uint, escape AnsiEscape) {
	built := escape.Build()
	//
	for col := range p.cells[row] {
		p.cells[row][col].escape = built
	}
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Disabling escapes is useful in environments that don't support
// escapes as, otherwise, you get a lot of visible escape characters being
// printed.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetRow sets the contents of an entire row in this table.
func (p *TablePrinter) SetRow(row uint, vals ...string) {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	// Update column widths
	for i := 0; i < len(p.widths); i++ {
		p.widths[i] = max(p.widths[i], uint(len(vals[i])))
		p.cells[row][i].text = vals[i]
	}
}

// SetMaxWidths puts an upper bound on the width of every column.
func (p *TablePrinter) SetMaxWidths(width uint) {
	for i := uint(0); i < uint(len(p.widths)); i++ {
		p.SetMaxWidth(i, width)
	}
}

// SetMaxWidth puts an upper bound on the width of a given column.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.widths[col] = min(p.widths[col], width)
}

// Print the table.
func (p *TablePrinter) Print() {
	for _, row := range p.cells {
		for j, jth := range row {
			width := p.widths[j]
			// Apply formatting (if applicable)
			if p.enableEscapes && jth.escape != "" {
				fmt.Print(jth.escape)
			}
			// Print data, truncating as necessary
			if uint(len(jth.text)) > width {
				fmt.Printf(" %-*s..", width-2, jth.text[0:width-2])
			} else {
				fmt.Printf(" %-*s", width, jth.text)
			}
			// Cancel formatting (if applicable)
			if p.enableEscapes && jth.escape != "" {
				fmt.Print(ResetAnsiEscape().Build())
			}
			//
			fmt.Print(" |")
		}
		//
		fmt.Println()
	}
}
