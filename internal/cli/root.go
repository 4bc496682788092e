// Package cli implements the phylio command tree.
//
// The layout is conventional cobra: one file per subcommand, flags bound in
// init, defaults resolved through viper so every flag can also be set from
// .phylio.yaml or a PHYLIO_* environment variable. Explicit flags win over
// profiles, profiles win over config and environment.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "phylio",
	Short: "Convert phylogenetic character matrices between formats",
	Long: `phylio converts phylogenetic and stemmatological character data between
tabular (CSV/TSV), NEXUS, and PHYLIP representations. State alphabets keep
their discovery order, so repeated renders of the same data are
byte-identical.`,
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .phylio.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log conversion steps to stderr")

	log.SetFlags(0)
	log.SetPrefix("phylio: ")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".phylio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PHYLIO")
	viper.AutomaticEnv()

	// A missing config file is fine; defaults cover everything.
	_ = viper.ReadInConfig()
}

var verboseEnabled bool

// debugf logs a line to stderr when --verbose is on.
func debugf(format string, args ...any) {
	if verboseEnabled {
		log.Printf(format, args...)
	}
}
