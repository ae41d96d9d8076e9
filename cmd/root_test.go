package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHeaderOptions(t *testing.T) {
	tests := []struct {
		name            string
		tapeHeaderFile  string
		prependPlus3Dos bool
		useSoftEOF      bool
		wantErr         bool
	}{
		{"no options", "", false, false, false},
		{"tape header alone", "prog.hdr", false, false, false},
		{"plus3dos alone", "", true, false, false},
		{"soft-eof alone", "", false, true, false},
		{"disk options together", "", true, true, false},
		{"tape header with plus3dos", "prog.hdr", true, false, true},
		{"tape header with soft-eof", "prog.hdr", false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkHeaderOptions(tt.tapeHeaderFile, tt.prependPlus3Dos, tt.useSoftEOF)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"bas2u", "asm2u", "u2asm", "version"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}
