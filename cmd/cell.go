/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/notargets/febasis/reference"
)

// CellCmd represents the cell command
var CellCmd = &cobra.Command{
	Use:   "cell [name]",
	Short: "Describe a reference cell",
	Long: `
Prints the vertices, entity counts and facet normals of a UFC reference cell. Names are
vertex, interval, triangle, tetrahedron, quadrilateral, hexahedron or products like "triangle * interval"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var cell reference.Cell
		if cell, err = reference.UFCCell(args[0]); err != nil {
			return
		}
		return describeCell(cell)
	},
}

func init() {
	rootCmd.AddCommand(CellCmd)
}

func describeCell(cell reference.Cell) (err error) {
	pterm.DefaultSection.Println(cell.Key())
	fmt.Printf("[%s]\t\t= Shape\n", cell.Shape())
	fmt.Printf("[%v]\t\t\t= Dimension\n", cell.Dimension())
	fmt.Printf("%8.5f\t\t= Volume\n", cell.Volume())
	data := pterm.TableData{{"Vertex", "Coordinates"}}
	for i, v := range cell.Vertices() {
		data = append(data, []string{fmt.Sprint(i), fmt.Sprint(v)})
	}
	if err = pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return
	}
	dims, counts := reference.EntityCounts(cell)
	data = pterm.TableData{{"Dimension", "Entities", "Orientations", "Vertices"}}
	for i, dim := range dims {
		var verts []string
		for _, ent := range cell.Topology()[dim] {
			verts = append(verts, fmt.Sprint(ent))
		}
		data = append(data, []string{
			dim.String(), fmt.Sprint(counts[i]), fmt.Sprint(cell.SymmetryGroupSize(dim)),
			strings.Join(verts, " "),
		})
	}
	if err = pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return
	}
	if cell.Dimension().IsTuple() || cell.Dimension().Sum() == 0 {
		return
	}
	facetDim := reference.D(cell.Dimension().Sum() - 1)
	data = pterm.TableData{{"Facet", "Reference Normal"}}
	for f := range cell.Topology()[facetDim] {
		var n []float64
		if n, err = cell.ReferenceNormal(facetDim, f); err != nil {
			return
		}
		data = append(data, []string{fmt.Sprint(f), fmt.Sprint(n)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
