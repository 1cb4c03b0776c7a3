package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/folio-dev/folio/internal/config"
)

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio site with a server-side contact form",
		Long: `folio serves a single-page portfolio and relays contact form
submissions to EmailJS or Resend.

Settings come from flags, FOLIO_* environment variables (a .env file is
loaded automatically) and folio.yaml, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			used, err := config.ReadFile(v, cfgFile)
			if err != nil {
				return err
			}
			if used != "" {
				cmd.PrintErrln("Using config file:", used)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./folio.yaml)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newServeCmd(v), newVersionCmd())
	return root
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"address":       "address",
	"content":       "content_path",
	"watch-content": "watch_content",
	"delivery":      "delivery",
}

// bindFlags binds only flags the user set, so unset flags do not mask
// environment variables or the config file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}
