package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.eggybyte.com/bulone/internal/catalog"
	"go.eggybyte.com/bulone/internal/ui"
)

// partsCmd represents the parts command.
var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "List the module parts in generation order",
	Args:  cobra.NoArgs,
	RunE:  runParts,
}

func init() {
	rootCmd.AddCommand(partsCmd)
}

// partInfo is the JSON form of a catalog entry.
type partInfo struct {
	Identifier  string `json:"identifier"`
	TemplateKey string `json:"template_key"`
	Directory   string `json:"directory"`
}

func runParts(cmd *cobra.Command, args []string) error {
	parts := catalog.All()

	if ui.JSONOutput() {
		infos := make([]partInfo, 0, len(parts))
		for _, p := range parts {
			infos = append(infos, partInfo{Identifier: p.Identifier(), TemplateKey: p.TemplateKey(), Directory: p.Directory()})
		}
		ui.Result(infos, "%d parts", len(infos))
		return nil
	}

	w := tabwriter.NewWriter(ui.Writer(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PART\tTEMPLATE\tDIRECTORY")
	for _, p := range parts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Identifier(), p.TemplateKey(), p.Directory())
	}
	return w.Flush()
}
