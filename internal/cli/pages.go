package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// pageInfo is the JSON shape of one page in the pages command.
type pageInfo struct {
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Fields         []string `json:"fields"`
	SearchFields   []string `json:"search_fields"`
	FilterField    string   `json:"filter_field,omitempty"`
	StatusField    string   `json:"status_field,omitempty"`
	Toggles        []string `json:"toggles,omitempty"`
	ReadOnlyCreate bool     `json:"read_only_create,omitempty"`
	ScopedDelete   bool     `json:"scoped_delete,omitempty"`
}

func newPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the console pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return sysError("%w", err)
			}
			registry, err := loadRegistry(s)
			if err != nil {
				return sysError("load pages: %w", err)
			}

			var infos []pageInfo
			for _, p := range registry.Pages() {
				info := pageInfo{
					Name:           p.Name,
					Title:          p.Title,
					SearchFields:   p.SearchFields,
					FilterField:    p.FilterField,
					StatusField:    p.StatusField,
					Toggles:        p.Toggles,
					ReadOnlyCreate: p.ReadOnlyCreate,
					ScopedDelete:   p.ScopedDelete,
				}
				for _, f := range p.Fields {
					info.Fields = append(info.Fields, f.Key)
				}
				infos = append(infos, info)
			}
			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), infos)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PAGE\tTITLE\tFILTER\tSEARCH")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.Title, info.FilterField, strings.Join(info.SearchFields, ","))
			}
			return tw.Flush()
		},
	}
}
