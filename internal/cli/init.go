package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/frontdesk/internal/pages"
	"github.com/mesh-intelligence/frontdesk/internal/sqlite"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func newInitCmd() *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize frontdesk storage",
		Long: "Create the configuration and data directories, write a default config.yaml\n" +
			"if none exists, and create an empty JSONL file for every page table.\n" +
			"With --sample, empty tables are filled with demonstration records.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, sample)
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "seed empty tables with demonstration records")
	return cmd
}

func runInit(cmd *cobra.Command, sample bool) error {
	s, err := loadSettings()
	if err != nil {
		return sysError("%w", err)
	}
	if err := os.MkdirAll(s.dirs.Config, 0o755); err != nil {
		return sysError("create config directory: %w", err)
	}

	cfg := defaultConfigFile()
	cfg.DataDir = flags.dataDir
	cfg.HotelID = flags.hotel
	written, err := writeConfigIfMissing(s.dirs.ConfigFile(), cfg)
	if err != nil {
		return sysError("write config: %w", err)
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(newLogger(cmd, s.logLevel)))
	if err := backend.Attach(s.datastoreConfig()); err != nil {
		return sysError("initialize storage: %w", err)
	}
	seeded := 0
	if sample {
		seeded, err = seedSamples(backend, s)
		if err != nil {
			backend.Detach()
			return sysError("seed samples: %w", err)
		}
	}
	if err := backend.Detach(); err != nil {
		return sysError("finalize storage: %w", err)
	}

	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintf(out, "Wrote %s\n", s.dirs.ConfigFile())
	}
	if sample {
		fmt.Fprintf(out, "Seeded %d sample records\n", seeded)
	}
	fmt.Fprintf(out, "Frontdesk initialized in %s\n", s.dirs.Data)
	return nil
}

// seedSamples fills every empty table with the demonstration records of
// its page.
func seedSamples(backend *sqlite.Backend, s settings) (int, error) {
	total := 0
	samples := pages.Samples(types.Scope{HotelID: s.hotelID})
	for _, table := range backend.TableNames() {
		n, err := backend.Seed(table, samples[table])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
