package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <page> <id>",
		Short: "Display one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, args[0], func(s *session) error {
				rec, err := s.target(args[1])
				if err != nil {
					return err
				}
				s.engine.OpenDetailModal(rec)
				defer s.engine.CloseModal()
				if flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), rec)
				}
				writeRecord(cmd.OutOrStdout(), s.page, rec)
				return nil
			})
		},
	}
}
