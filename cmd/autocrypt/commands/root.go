package commands

import (
	"github.com/spf13/cobra"

	"autocrypt/internal/app"
	"autocrypt/internal/util/log"
)

var (
	configPath string
	home       string
	logLevel   string
	padding    string
	wire       *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "autocrypt",
		Short:        "Authenticated ECDHE key establishment and message protection",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var (
				cfg app.Config
				err error
			)
			if configPath == "" && flags.Changed("home") {
				cfg, err = app.LoadConfigHome(home)
			} else {
				cfg, err = app.LoadConfig(configPath)
			}
			if err != nil {
				return err
			}
			if flags.Changed("home") {
				cfg.Home = home
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("padding") {
				cfg.Padding = padding
			}
			wire, err = app.NewWire(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default <home>/config.toml)")
	pf.StringVar(&home, "home", "", "key directory (default ~/.autocrypt)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&padding, "padding", "", "message padding: pkcs7 or custom")

	root.AddCommand(keygenCmd(), fingerprintCmd(), kdfCmd(), demoCmd(), benchCmd())
	return root
}
