package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/icebreaker-games/icebreaker/internal/tui"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
)

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", outputTable, "output format: table or json")
}

// outputFormat returns the validated --output value.
func outputFormat(cmd *cobra.Command) (string, error) {
	v, _ := cmd.Flags().GetString("output")
	switch f := strings.ToLower(v); f {
	case outputTable, outputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", v)
	}
}

// outputMode picks how table output is presented on this terminal.
func outputMode(cmd *cobra.Command) tui.OutputMode {
	plain, _ := cmd.Flags().GetBool("plain")
	return tui.DetectOutputMode(plain, false, false)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
