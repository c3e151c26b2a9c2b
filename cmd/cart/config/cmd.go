// Package configcmd implements the `cart config` command group.
package configcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/gomarketplace/cmd/cart/shared"
	"github.com/go-ports/gomarketplace/internal/config"
)

const configTemplate = `# GoMarketplace cart configuration

# Where the cart is persisted between sessions.
storage:
  backend: sqlite                 # sqlite | memory
  key: "@GoMarketPlace:products"  # storage key of the cart blob

# Diagnostics written to stderr.
log:
  level: warn                     # debug | info | warn | error
`

// Command implements `cart config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newConfigInit(ctx),
		newSetHome(),
		newClearHome(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	home := c.ctx.Home()
	cfg, err := home.LoadConfig()
	if err != nil {
		return err
	}
	data := map[string]any{
		"storage": map[string]any{
			"backend": cfg.Storage.Backend,
			"key":     cfg.Storage.Key,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
		},
		"cart_home":        home.Path,
		"cart_home_source": string(home.Source),
		"database":         home.DBPath(),
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := ctx.Home()
			cfgPath := home.ConfigPath()
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := home.Ensure(); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config set-home / clear-home
// ---------------------------------------------------------------------------

func newSetHome() *cobra.Command {
	return &cobra.Command{
		Use:   "set-home <path>",
		Short: "Persist cart home location (used when CART_HOME is unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.PersistHome(args[0])
			if err != nil {
				return err
			}
			if err := (config.Home{Path: resolved}).Ensure(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persisted cart home: %s\n", resolved)
			fmt.Fprintln(out, "Override anytime with CART_HOME.")
			return nil
		},
	}
}

func newClearHome() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-home",
		Short: "Remove persisted cart home location from global config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := config.ClearPersistedHome()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if changed {
				fmt.Fprintln(out, "Cleared persisted cart home setting.")
			} else {
				fmt.Fprintln(out, "No persisted cart home setting was found.")
			}
			return nil
		},
	}
}
