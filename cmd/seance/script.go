package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"seance/internal/story"
	"seance/internal/timeline"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the compiled-in timeline",
	Run: func(cmd *cobra.Command, args []string) {
		segments := story.Script()
		offsets := timeline.Offsets(segments)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "OFFSET\tDURATION\tID\tEFFECTS")
		for i, seg := range segments {
			effects := ""
			for j, e := range seg.Effects {
				if j > 0 {
					effects += ","
				}
				effects += e.String()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				offsets[i].Round(time.Millisecond),
				seg.Duration.Round(time.Millisecond),
				seg.ID,
				effects,
			)
		}
		fmt.Fprintf(w, "%s\t\ttotal\t\n", timeline.Total(segments).Round(time.Millisecond))
		w.Flush()
	},
}
