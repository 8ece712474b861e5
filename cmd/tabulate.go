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
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/InputParameters"
	"github.com/notargets/febasis/cache"
	"github.com/notargets/febasis/element"
	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/logger"
	"github.com/notargets/febasis/polynomial"
	"github.com/notargets/febasis/quadrature"
)

// TabulateCmd represents the tabulate command
var TabulateCmd = &cobra.Command{
	Use:   "tabulate",
	Short: "Evaluate the basis functions of elements and their derivatives",
	Long: `
Tabulates nodal basis functions and derivatives up to an order at reference points,
febasis tabulate -f BDM -c triangle -n 1 -d 1 -p 0.25,0.25 -p 0.5,0.1
febasis tabulate -f BDM -c triangle -n 1 -p 0.25,0.25 -J 2,0 -J 0,1
febasis tabulate -E elements.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			tabs     = cache.NewTabulations()
			requests = make(map[string]*InputParameters.ElementRequest)
			names    []string
		)
		elementsFile, _ := cmd.Flags().GetString("elementsFile")
		if len(elementsFile) != 0 {
			var data []byte
			if data, err = os.ReadFile(elementsFile); err != nil {
				return
			}
			ers := &InputParameters.ElementRequests{}
			if err = ers.Parse(data); err != nil {
				return
			}
			requests, names = ers.Elements, ers.Names()
		} else {
			var er *InputParameters.ElementRequest
			if er, err = requestFromFlags(cmd); err != nil {
				return
			}
			if len(er.Points) == 0 {
				if er.Points, err = pointFlags(cmd); err != nil {
					return
				}
			}
			if order, _ := cmd.Flags().GetInt("order"); er.Order == 0 {
				er.Order = order
			}
			if len(er.Jacobian) == 0 {
				if er.Jacobian, err = floatRows(cmd, "jacobian"); err != nil {
					return
				}
				if err = er.Validate(); err != nil {
					return
				}
			}
			requests[er.Family], names = er, []string{er.Family}
		}
		for _, name := range names {
			if err = tabulate(tabs, requests[name]); err != nil {
				return
			}
		}
		hits, misses := tabs.Stats()
		pterm.Info.Printfln("tabulation cache: %d hits, %d misses", hits, misses)
		return
	},
}

func init() {
	rootCmd.AddCommand(TabulateCmd)
	addRequestFlags(TabulateCmd)
	TabulateCmd.Flags().StringP("elementsFile", "E", "", "YAML file with several element requests")
	TabulateCmd.Flags().IntP("order", "d", 0, "derivative order")
	TabulateCmd.Flags().StringArrayP("point", "p", nil, "comma separated reference coordinates, repeatable")
	TabulateCmd.Flags().StringArrayP("jacobian", "J", nil,
		"comma separated row of a physical cell Jacobian, repeat once per row to push the basis forward")
}

func pointFlags(cmd *cobra.Command) (pts [][]float64, err error) {
	return floatRows(cmd, "point")
}

func floatRows(cmd *cobra.Command, name string) (rows [][]float64, err error) {
	args, _ := cmd.Flags().GetStringArray(name)
	for _, arg := range args {
		var row []float64
		for _, s := range strings.Split(arg, ",") {
			var x float64
			if x, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
				err = errors.Mark(errors.Wrapf(err, "--%s %q", name, arg), errors.ErrConfiguration)
				return
			}
			row = append(row, x)
		}
		rows = append(rows, row)
	}
	return
}

func tabulate(tabs *cache.Tabulations, er *InputParameters.ElementRequest) (err error) {
	var el *element.CiarletElement
	if el, err = buildElement(er); err != nil {
		return
	}
	pts := er.Points
	if len(pts) == 0 {
		var q *quadrature.Rule
		if q, err = quadrature.Create(el.Cell(), el.Degree()); err != nil {
			return
		}
		pts = q.Points
	}
	tab, err := tabs.Tabulate(el, er.Order, pts)
	if err != nil {
		return
	}
	logger.Infow("tabulated element",
		logger.FieldFamily, el.Family(),
		logger.FieldCell, el.Cell().Key(),
		logger.FieldDegree, el.Degree(),
		logger.FieldPoints, len(pts))
	pterm.DefaultSection.Println(el.Key())
	sd := el.Cell().SpatialDimension()
	for _, alpha := range polynomial.DerivativeIndices(sd, er.Order) {
		fmt.Printf("D%s\n", alpha)
		if err = printValues(el, pts, tab[alpha]); err != nil {
			return
		}
	}
	if J := er.JacobianMatrix(); J != nil {
		var vals *mat.Dense
		if vals, err = el.PushForward(J, pts); err != nil {
			return
		}
		logger.Infow("pushed basis forward", logger.FieldFamily, el.Family(), "mapping", el.Mapping().String())
		fmt.Printf("%s push forward\n", el.Mapping())
		err = printValues(el, pts, vals)
	}
	return
}

func printValues(el *element.CiarletElement, pts [][]float64, vals *mat.Dense) (err error) {
	ncomp := 1
	for _, s := range el.ValueShape() {
		ncomp *= s
	}
	header := []string{"Basis", "Component"}
	for _, pt := range pts {
		header = append(header, fmt.Sprint(pt))
	}
	data := pterm.TableData{header}
	for j := 0; j < el.SpaceDimension(); j++ {
		for c := 0; c < ncomp; c++ {
			row := []string{fmt.Sprint(j), fmt.Sprint(c)}
			for k := range pts {
				row = append(row, fmt.Sprintf("%10.6f", vals.At(j*ncomp+c, k)))
			}
			data = append(data, row)
		}
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
