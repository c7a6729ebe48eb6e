package main

import (
	"io"

	"encoding/json/jsontext"
	"encoding/json/v2"

	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()
	if err := json.MarshalWrite(out, v, jsontext.WithIndent("  ")); err != nil {
		return err
	}
	_, err := io.WriteString(out, "\n")
	return err
}
