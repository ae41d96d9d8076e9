package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zxkit/go-zx-conv/internal/config"
	"github.com/zxkit/go-zx-conv/internal/convert"
	"github.com/zxkit/go-zx-conv/internal/logger"
)

var (
	asm2uLineNumbers bool
	asm2uSoftEOF     bool
)

// asm2uCmd converts HiSoft GEN assembler to Unicode text
var asm2uCmd = &cobra.Command{
	Use:   "asm2u input [output]",
	Short: "Convert a HiSoft GEN Assembler file to Unicode text",
	Long: `Convert a HiSoft GEN Assembler file to Unicode text. The input is the
raw data block extracted from a TAP/TZX/DSK image. The output file
defaults to the input name with ".txt" appended.

A +3DOS file header on the input is detected automatically, as is the
16-bit length prefix some GEN files start with.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convert.Options{
			InputFile:          args[0],
			IncludeLineNumbers: asm2uLineNumbers || config.Instance.Convert.IncludeLineNumbers,
			UseSoftEOF:         asm2uSoftEOF,
		}
		if len(args) > 1 {
			opts.OutputFile = args[1]
		}

		logger.LogInfo("Converting assembler to Unicode", map[string]interface{}{
			"input": opts.InputFile,
		})
		return convert.AsmToUnicode(opts)
	},
}

func init() {
	asm2uCmd.Flags().BoolVarP(&asm2uLineNumbers, "line-numbers", "l", false,
		"Include line numbers in the output file")
	asm2uCmd.Flags().BoolVarP(&asm2uSoftEOF, "soft-eof", "s", false,
		"Stop parsing input at a soft-EOF byte (1Ah)")

	rootCmd.AddCommand(asm2uCmd)
}
