package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/frontdesk/pkg/crud"
)

type listOptions struct {
	search   string
	filter   string
	page     int
	pageSize int
	mode     string
	sort     string
}

func newListCmd() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list <page>",
		Short: "List the records of a page",
		Long: `List shows one page of records after search and filter.

The search term matches the page's search fields case-insensitively. The
filter value matches the page's filter field exactly.
Sort names a field, with a leading "-" for descending order.

Example:
  frontdesk list amenities --search pool
  frontdesk list tasks --filter pending --page 2 --page-size 5
  frontdesk list staff --sort -hire_date --mode grid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, args[0], func(s *session) error {
				return runList(cmd, s, opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.search, "search", "", "search term")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "filter value")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "records per page (default: page_size from config)")
	cmd.Flags().StringVar(&opts.mode, "mode", string(crud.ViewList), "view mode: list or grid")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort field, prefix with - for descending")
	return cmd
}

func runList(cmd *cobra.Command, s *session, opts listOptions) error {
	e := s.engine
	mode, err := crud.ParseViewMode(opts.mode)
	if err != nil {
		return userError("%w", err)
	}
	if err := e.SetViewMode(mode); err != nil {
		return userError("%w", err)
	}
	if opts.pageSize != 0 {
		if err := e.SetPageSize(opts.pageSize); err != nil {
			return userError("%w", err)
		}
	}
	if opts.sort != "" {
		field, desc := strings.CutPrefix(opts.sort, "-")
		e.SetSort(crud.SortBy{Field: field, Desc: desc})
	}
	e.SetSearchTerm(opts.search)
	e.SetFilterValue(opts.filter)
	e.GoToPage(opts.page)

	items := e.PageItems()
	pg := e.Pagination()
	out := cmd.OutOrStdout()
	if flags.jsonMode {
		return writeJSON(out, listOutput{
			Page:       s.page.Name,
			Search:     e.SearchTerm(),
			Filter:     e.FilterValue(),
			Mode:       e.Mode(),
			Pagination: pg,
			Items:      items,
		})
	}

	if len(items) == 0 {
		fmt.Fprintf(out, "No %s found\n", strings.ToLower(s.page.Title))
		return nil
	}
	if mode == crud.ViewGrid {
		writeGrid(out, s.page, items)
	} else {
		writeTable(out, s.page, items)
	}
	fmt.Fprintf(out, "\nPage %d of %d (%d records)\n", pg.CurrentPage, pg.TotalPages, pg.TotalItems)
	return nil
}
