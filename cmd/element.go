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
	"math"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/notargets/febasis/InputParameters"
	"github.com/notargets/febasis/element"
	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/pullback"
	"github.com/notargets/febasis/reference"
)

// ElementCmd represents the element command
var ElementCmd = &cobra.Command{
	Use:   "element",
	Short: "Build a finite element and report its dofs",
	Long: `
Builds a Ciarlet element and prints its entity dofs and the unisolvence check,
febasis element -f Lagrange -c triangle -n 2
febasis element -I element.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var er *InputParameters.ElementRequest
		if er, err = requestFromFlags(cmd); err != nil {
			return
		}
		var el *element.CiarletElement
		if el, err = buildElement(er); err != nil {
			return
		}
		return describeElement(el)
	},
}

func init() {
	rootCmd.AddCommand(ElementCmd)
	addRequestFlags(ElementCmd)
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("inputFile", "I", "", "YAML element request file, overrides the other flags")
	cmd.Flags().StringP("family", "f", element.Lagrange, fmt.Sprintf("element family, one of %v", element.Families()))
	cmd.Flags().StringP("cell", "c", "triangle", "reference cell name")
	cmd.Flags().IntP("degree", "n", 1, "polynomial degree")
	cmd.Flags().String("variant", "", "point variant: equispaced|gll for Lagrange, point|integral|integral(q) for BDM")
}

func requestFromFlags(cmd *cobra.Command) (er *InputParameters.ElementRequest, err error) {
	er = &InputParameters.ElementRequest{}
	inputFile, _ := cmd.Flags().GetString("inputFile")
	if len(inputFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(inputFile); err != nil {
			return
		}
		if err = er.Parse(data); err != nil {
			fmt.Printf("Example File:%s\n", InputParameters.ExampleFile)
			return
		}
		er.Print()
		return
	}
	er.Family, _ = cmd.Flags().GetString("family")
	er.Cell, _ = cmd.Flags().GetString("cell")
	er.Degree, _ = cmd.Flags().GetInt("degree")
	er.Variant, _ = cmd.Flags().GetString("variant")
	err = er.Validate()
	return
}

func buildElement(er *InputParameters.ElementRequest) (el *element.CiarletElement, err error) {
	var cell reference.Cell
	if cell, err = reference.UFCCell(er.Cell); err != nil {
		return
	}
	if el, err = element.New(er.Family, cell, er.Degree, er.Variant); err != nil {
		return
	}
	if er.Mapping != "" {
		var m pullback.Mapping
		if m, err = pullback.NewMapping(er.Mapping); err != nil {
			return
		}
		if m != el.Mapping() {
			err = errors.Configf("%s maps by %s, the request expects %s", el.Key(), el.Mapping(), m)
		}
	}
	return
}

func describeElement(el *element.CiarletElement) (err error) {
	pterm.DefaultSection.Println(el.Key())
	fmt.Printf("[%d]\t\t\t= Space Dimension\n", el.SpaceDimension())
	fmt.Printf("[%v]\t\t\t= Value Shape\n", el.ValueShape())
	fmt.Printf("[%d]\t\t\t= Form Degree\n", el.FormDegree())
	fmt.Printf("[%s]\t\t= Mapping\n", el.Mapping())
	ids, closure := el.EntityDofs(), el.EntityClosureDofs()
	data := pterm.TableData{{"Entity", "Dofs", "Closure Dofs", "Node Kinds"}}
	for _, dim := range el.Cell().Topology().Dims() {
		for e, dofs := range ids[dim] {
			var kinds []string
			for _, dof := range dofs {
				kinds = append(kinds, el.Nodes()[dof].Kind().String())
			}
			data = append(data, []string{
				reference.Entity{Dim: dim, Index: e}.String(),
				fmt.Sprint(dofs), fmt.Sprint(closure[dim][e]), fmt.Sprint(kinds),
			})
		}
	}
	if err = pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return
	}
	D, err := el.DualMatrix()
	if err != nil {
		return
	}
	var maxDev float64
	n, _ := D.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			target := 0.
			if i == j {
				target = 1
			}
			maxDev = math.Max(maxDev, math.Abs(D.At(i, j)-target))
		}
	}
	pterm.Success.Printfln("nodes applied to the nodal basis deviate from the identity by %8.3e", maxDev)
	return
}
