package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zxkit/go-zx-conv/internal/convert"
	"github.com/zxkit/go-zx-conv/internal/logger"
)

var (
	u2asmTapeHeaderFile string
	u2asmPlus3Dos       bool
	u2asmSoftEOF        bool
)

// u2asmCmd converts Unicode text to HiSoft GEN assembler
var u2asmCmd = &cobra.Command{
	Use:   "u2asm input [output]",
	Short: "Convert Unicode text to a HiSoft GEN Assembler file",
	Long: `Convert a Unicode text file to the HiSoft GEN Assembler binary format.
The output file defaults to the input name with ".asm" appended and
needs to be written into a TAP/TZX/DSK image to be used in an emulator.

Lines starting with a decimal number keep it; unnumbered lines are
numbered automatically starting at 10 in steps of 10.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkHeaderOptions(u2asmTapeHeaderFile, u2asmPlus3Dos, u2asmSoftEOF); err != nil {
			return err
		}

		opts := convert.Options{
			InputFile:       args[0],
			TapeHeaderFile:  u2asmTapeHeaderFile,
			PrependPlus3Dos: u2asmPlus3Dos,
			UseSoftEOF:      u2asmSoftEOF,
		}
		if len(args) > 1 {
			opts.OutputFile = args[1]
		}

		logger.LogInfo("Converting Unicode to assembler", map[string]interface{}{
			"input": opts.InputFile,
		})
		return convert.UnicodeToAsm(opts)
	},
}

func init() {
	u2asmCmd.Flags().StringVarP(&u2asmTapeHeaderFile, "tape-header", "t", "",
		"Tape header filename to generate alongside the output file")
	u2asmCmd.Flags().BoolVarP(&u2asmPlus3Dos, "plus3dos", "3", false,
		"Prepend a +3DOS file header to the output file")
	u2asmCmd.Flags().BoolVarP(&u2asmSoftEOF, "soft-eof", "s", false,
		"Append a soft-EOF byte (1Ah) to the output file")

	rootCmd.AddCommand(u2asmCmd)
}
