// config.go implements "hueful config init" and "hueful config show".
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hueful/hueful/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ~/.hueful/config.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after environment variables and --api-url
have been applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var forceFlag bool

func init() {
	configInitCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := config.HomeDir()
	if err != nil {
		return err
	}

	path := filepath.Join(home, "config.yaml")
	if _, err := os.Stat(path); err == nil && !forceFlag {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.DefaultConfig()
	if apiURLFlag != "" {
		cfg.API.BaseURL = apiURLFlag
	}
	if err := config.WriteConfig(home, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	data, err := yaml.Marshal(e.cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# home: %s\n", e.home)
	_, err = out.Write(data)
	return err
}
