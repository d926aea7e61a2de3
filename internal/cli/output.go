package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/frontdesk/internal/pages"
	"github.com/mesh-intelligence/frontdesk/pkg/crud"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// listColumns caps the columns of text tables; JSON output carries all
// fields.
const listColumns = 5

// listOutput is the JSON shape of the list command.
type listOutput struct {
	Page       string          `json:"page"`
	Search     string          `json:"search,omitempty"`
	Filter     string          `json:"filter,omitempty"`
	Mode       crud.ViewMode   `json:"mode"`
	Pagination crud.Pagination `json:"pagination"`
	Items      []types.Record  `json:"items"`
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// writeTable prints records as aligned columns: the id, then the first page
// columns.
func writeTable(w io.Writer, p pages.Page, recs []types.Record) {
	cols := p.Columns
	if len(cols) > listColumns {
		cols = cols[:listColumns]
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := append([]string{"ID"}, cols...)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(header, "\t")))
	for _, r := range recs {
		row := []string{string(r.EntityID())}
		for _, c := range cols {
			v, _ := r.Field(c)
			row = append(row, cell(v))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// writeGrid prints each record as a titled card.
func writeGrid(w io.Writer, p pages.Page, recs []types.Record) {
	for i, r := range recs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if len(p.Columns) == 0 {
			fmt.Fprintf(w, "[%s]\n", r.EntityID())
			continue
		}
		title, _ := r.Field(p.Columns[0])
		fmt.Fprintf(w, "[%s] %s\n", r.EntityID(), cell(title))
		for _, c := range p.Columns[1:min(len(p.Columns), listColumns)] {
			if v, ok := r.Field(c); ok && v != nil && v != "" {
				fmt.Fprintf(w, "  %s: %s\n", c, cell(v))
			}
		}
	}
}

// writeRecord prints every field of one record, page columns first.
func writeRecord(w io.Writer, p pages.Page, r types.Record) {
	values := r.Values()
	seen := map[string]bool{}
	keys := []string{types.DefaultIDKey}
	seen[types.DefaultIDKey] = true
	for _, c := range p.Columns {
		if !seen[c] {
			keys = append(keys, c)
			seen[c] = true
		}
	}
	var rest []string
	for k := range values {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		v, ok := values[k]
		if !ok || v == nil {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", k, cell(v))
	}
	tw.Flush()
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case string:
		return x
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprint(v)
}
