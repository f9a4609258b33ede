package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seance",
	Short: "A scripted audio-visual experience with a procedurally synthesized soundscape",
	Long: `Seance plays a fixed narrative timeline in the terminal while layering a
procedurally synthesized soundscape underneath: a continuous ambient bed
plus one-shot effect voices synced to the segments as they reveal.`,
}

func main() {
	log.SetPrefix("[SEANCE] ")
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scriptCmd)
}
