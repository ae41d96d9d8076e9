package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zxkit/go-zx-conv/internal/config"
	"github.com/zxkit/go-zx-conv/internal/logger"
)

var cfgFile string

// rootCmd represents the base CLI command
var rootCmd = &cobra.Command{
	Use:   "zxconv",
	Short: "ZX Spectrum <-> Unicode file converter",
	Long: `zxconv converts files between the ZX Spectrum 8-bit encoding and
Unicode text. It supports tokenized Sinclair BASIC listings (BAS) and
HiSoft GEN Assembler sources (ASM), and understands the platform's tape
and +3DOS file headers.

The Spectrum-side files are the raw data blocks extracted from TAP, TZX
or DSK images; container formats themselves are not parsed.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// If config file was explicitly specified via flag, reload before
		// applying flag overrides
		if cmd.Flags().Changed("config") && cfgFile != "" {
			// Only log an error, don't exit, as the config may still be usable
			if err := config.Reinitialize(cfgFile); err != nil {
				logger.LogError("Error loading config file", err, map[string]interface{}{
					"config_file": cfgFile,
				})
			}
		}

		// CLI flags can override config settings
		reinitLogger := false
		if cmd.Flags().Changed("debug") {
			debug, _ := cmd.Flags().GetBool("debug")
			config.Instance.Debug = debug
			reinitLogger = true
		}

		if cmd.Flags().Changed("log-format") {
			logFormat, _ := cmd.Flags().GetString("log-format")
			config.Instance.LogFormat = logFormat
			reinitLogger = true
		}

		if reinitLogger || cmd.Flags().Changed("config") {
			if err := logger.InitLogger(logger.LoggerConfig{
				Debug:     config.Instance.Debug,
				LogFormat: config.Instance.LogFormat,
				LogFile:   config.Instance.LogFile,
			}); err != nil {
				logger.LogError("Error reinitializing logger", err, nil)
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command; it reports failure through the exit code
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is search in standard locations)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "human", "Log format: json or human")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// checkHeaderOptions enforces mutual exclusivity between the tape header
// artifact and the disk-oriented options.
func checkHeaderOptions(tapeHeaderFile string, prependPlus3Dos, useSoftEOF bool) error {
	if tapeHeaderFile != "" && (prependPlus3Dos || useSoftEOF) {
		return errors.New("cannot use --tape-header at the same time as disk options --plus3dos or --soft-eof")
	}
	return nil
}

// versionCmd shows the application version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("zxconv v0.1.0")
	},
}
