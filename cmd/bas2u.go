package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zxkit/go-zx-conv/internal/config"
	"github.com/zxkit/go-zx-conv/internal/convert"
	"github.com/zxkit/go-zx-conv/internal/logger"
)

var (
	bas2uTapeHeaderFile string
	bas2u48KTokens      bool
	bas2uSoftEOF        bool
)

// bas2uCmd converts Sinclair BASIC to Unicode text
var bas2uCmd = &cobra.Command{
	Use:   "bas2u input [output]",
	Short: "Convert a Sinclair BASIC file to Unicode text",
	Long: `Convert a tokenized Sinclair BASIC file to Unicode text. The input is
the raw data block extracted from a TAP/TZX/DSK image. The output file
defaults to the input name with ".txt" appended.

A +3DOS file header on the input is detected automatically and bounds
the program body. Alternatively --tape-header supplies the tape header
block saved ahead of the program.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkHeaderOptions(bas2uTapeHeaderFile, false, bas2uSoftEOF); err != nil {
			return err
		}

		opts := convert.Options{
			InputFile:      args[0],
			TapeHeaderFile: bas2uTapeHeaderFile,
			Use48KTokens:   bas2u48KTokens || config.Instance.Convert.Use48KTokens,
			UseSoftEOF:     bas2uSoftEOF,
		}
		if len(args) > 1 {
			opts.OutputFile = args[1]
		}

		logger.LogInfo("Converting BASIC to Unicode", map[string]interface{}{
			"input": opts.InputFile,
		})
		return convert.BasicToUnicode(opts)
	},
}

func init() {
	bas2uCmd.Flags().BoolVarP(&bas2u48KTokens, "use-48k-tokens", "4", false,
		"Use ZX Spectrum 48K (vs 128K) BASIC tokens in the output file")
	bas2uCmd.Flags().StringVarP(&bas2uTapeHeaderFile, "tape-header", "t", "",
		"Tape header filename to read the program length from")
	bas2uCmd.Flags().BoolVarP(&bas2uSoftEOF, "soft-eof", "s", false,
		"Stop parsing input at a soft-EOF byte (1Ah)")

	rootCmd.AddCommand(bas2uCmd)
}
