// Package cli implements the frontdesk command-line interface. Every page
// command drives a crud engine built over the local datastore, so edits made
// here go through the same validation and optimistic pipeline as the console.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	hotel     string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "frontdesk" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "frontdesk",
		Short: "Manage hotel operations records",
		Long: "Frontdesk lists, creates, edits and deletes the records behind the\n" +
			"hotel operations console: amenities, announcements, staff, tasks and more.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: per-user data dir)")
	root.PersistentFlags().StringVar(&flags.hotel, "hotel", "", "hotel id that scopes records (overrides hotel_id in config)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newPagesCmd(),
		newListCmd(),
		newShowCmd(),
		newCreateCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newToggleCmd(),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		report(root.ErrOrStderr(), err)
	}
	os.Exit(exitCode(err))
}

// exitError carries an explicit exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// userSentinels are the failures caused by what the operator typed.
var userSentinels = []error{
	types.ErrValidation,
	types.ErrUnknownPage,
	types.ErrUnknownField,
	types.ErrNotFound,
	types.ErrInvalidViewMode,
	types.ErrInvalidPageSize,
	types.ErrInvalidFilter,
	types.ErrSubmitInProgress,
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	for _, s := range userSentinels {
		if errors.Is(err, s) {
			return exitUserError
		}
	}
	return exitSysError
}

// report writes err to w. Validation failures list one field per line.
func report(w io.Writer, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(w, "Error: validation failed")
		for _, key := range verr.Keys() {
			fmt.Fprintf(w, "  %s: %s\n", key, verr.Fields[key])
		}
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err)
}
