/*
Copyright 2020 Google LLC

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
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Analysis is a rendered report section: a header row, data rows, and a
// trailing summary line.
type Analysis struct {
	results [][]string
	summary string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	if a.summary != "" {
		fmt.Fprintf(out, "%s\n", a.summary)
	}
	return out.String()
}

// HTML renders the section as a table for email bodies.
func (a Analysis) HTML() string {
	out := new(bytes.Buffer)
	out.WriteString("<table>\n<thead>\n<tr>\n")
	for _, header := range a.results[0] {
		fmt.Fprintf(out, "<th>%s</th>", header)
	}
	out.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range a.results[1:] {
		out.WriteString("<tr>\n")
		for _, column := range row {
			fmt.Fprintf(out, "<td>%s</td>\n", column)
		}
		out.WriteString("</tr>\n")
	}
	out.WriteString("</tbody>\n</table>\n")
	if a.summary != "" {
		fmt.Fprintf(out, "<div>%s</div>\n", a.summary)
	}
	return out.String()
}
