package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
)

func newInitCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default ledgerline.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address for the server")

	return cmd
}

func runInit(dir, addr string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	path := filepath.Join(dir, "ledgerline.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.Default()
	cfg.Server.Addr = addr
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
