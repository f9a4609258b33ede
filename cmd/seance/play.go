package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"seance/internal/audio"
	"seance/internal/story"
	"seance/internal/timeline"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the experience from the beginning",
	Long: `Play runs the full scripted timeline: the ambient bed starts, segments
reveal on schedule with their effects, and the session ends when the last
segment has displayed for its duration. Ctrl-C aborts and tears down.`,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := story.ParseConfig()
	if err != nil {
		return err
	}

	newBackend := func() (audio.Backend, error) {
		if cfg.Silent {
			return audio.NewStubBackend(cfg.SampleRate), nil
		}
		return audio.NewOtoBackend(cfg.SampleRate)
	}
	session := audio.NewSession(newBackend)

	segments := story.Script()
	renderer := &playRenderer{
		ConsoleRenderer: story.ConsoleRenderer{
			Out:       os.Stdout,
			ShowTicks: true,
			Total:     timeline.Total(segments),
		},
		finished: make(chan struct{}),
	}
	ctrl := story.New(session, renderer, segments, cfg.TickInterval)

	if err := ctrl.Start(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case <-renderer.finished:
		// Let the last chime tail ring out before teardown.
		time.Sleep(2 * time.Second)
	case <-interrupt:
		fmt.Fprintln(os.Stdout, "\naborted")
	}
	ctrl.Stop()
	return nil
}

// playRenderer signals the command loop when the timeline finishes.
type playRenderer struct {
	story.ConsoleRenderer
	finished chan struct{}
}

func (r *playRenderer) StatusChanged(status story.Status) {
	r.ConsoleRenderer.StatusChanged(status)
	if status == story.StatusFinished {
		close(r.finished)
	}
}
