package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/frontdesk/internal/pages"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// parseAssignments turns key=value arguments into form values. Values are
// coerced to the page's field kinds.
func parseAssignments(p pages.Page, args []string) (types.Values, error) {
	values := types.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, userError("invalid assignment %q (expected key=value)", arg)
		}
		values[key] = value
	}
	return pages.Coerce(p, values), nil
}

// fillForm sets each value on the open draft, keeping the draft's other
// values.
func fillForm(s *session, values types.Values) error {
	for k, v := range values {
		if err := s.engine.UpdateField(k, v); err != nil {
			return userError("%s: %w", s.page.Name, err)
		}
	}
	return nil
}

func writeResult(cmd *cobra.Command, s *session, verb string, rec types.Record) error {
	if flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), rec)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb, s.page.Name, rec.EntityID())
	return nil
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <page> key=value...",
		Short: "Create a record",
		Long: `Create validates the values against the page's fields and writes a new record.
Fields that are not given keep their defaults.

Example:
  frontdesk create amenities name="Rooftop pool" category=pool capacity=40`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, args[0], func(s *session) error {
				values, err := parseAssignments(s.page, args[1:])
				if err != nil {
					return err
				}
				s.engine.OpenCreateModal()
				if err := fillForm(s, values); err != nil {
					return err
				}
				created, err := s.engine.HandleCreateSubmit(cmd.Context())
				if err != nil {
					return remoteFailure("create", err)
				}
				return writeResult(cmd, s, "Created", created)
			})
		},
	}
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <page> <id> key=value...",
		Short: "Edit a record",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, args[0], func(s *session) error {
				values, err := parseAssignments(s.page, args[2:])
				if err != nil {
					return err
				}
				rec, err := s.target(args[1])
				if err != nil {
					return err
				}
				s.engine.OpenEditModal(rec)
				if err := fillForm(s, values); err != nil {
					return err
				}
				updated, err := s.engine.HandleEditSubmit(cmd.Context())
				if err != nil {
					return remoteFailure("update", err)
				}
				return writeResult(cmd, s, "Updated", updated)
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <page> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, args[0], func(s *session) error {
				rec, err := s.target(args[1])
				if err != nil {
					return err
				}
				s.engine.OpenDeleteModal(rec)
				if err := s.engine.HandleDeleteConfirm(cmd.Context()); err != nil {
					return remoteFailure("delete", err)
				}
				if flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"deleted": string(rec.EntityID())})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", s.page.Name, rec.EntityID())
				return nil
			})
		},
	}
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <page> <id> <field> <true|false>",
		Short: "Set a boolean field of a record",
		Long: `Toggle sets the page's status field, or one of its toggle fields, without
opening an edit form.

Example:
  frontdesk toggle amenities 0192f1c2-7d1e-7c3a-9a51-2f6c7e1b9d40 is_active false`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, args[0], func(s *session) error {
				field := args[2]
				if !s.page.CanToggle(field) {
					return userError("%s cannot toggle %q: %w", s.page.Name, field, types.ErrUnknownField)
				}
				value, err := strconv.ParseBool(args[3])
				if err != nil {
					return userError("invalid value %q (expected true or false)", args[3])
				}
				rec, err := s.target(args[1])
				if err != nil {
					return err
				}
				if field == s.page.StatusField {
					err = s.engine.HandleStatusToggle(cmd.Context(), rec.EntityID(), value)
				} else {
					err = s.engine.HandleFieldToggle(cmd.Context(), rec.EntityID(), value, field)
				}
				if err != nil {
					return remoteFailure("toggle", err)
				}
				updated, _ := s.engine.ByID(rec.EntityID())
				return writeResult(cmd, s, "Updated", updated)
			})
		},
	}
}
