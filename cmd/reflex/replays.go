package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-reflex/internal/board"
	"github.com/vovakirdan/tui-reflex/internal/platform/tui"
	"github.com/vovakirdan/tui-reflex/internal/replay"
	"github.com/vovakirdan/tui-reflex/internal/round"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagTrace bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse stored recordings",
	Long: `Lists the newest recordings in an interactive table. Enter re-simulates
the selected recording, d deletes it.

Examples:
  reflex replays
  reflex replays --limit 50
  reflex replays --plain`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recording",
	Long: `Replays the recorded inputs against a fresh engine seeded like the
recorded session and prints the outcome of every finished round. The id
may be shortened to any unique prefix.

Examples:
  reflex replay 3f2a9c1e
  reflex replay 3f2a9c1e --trace`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of recordings to list")
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain list instead of the table")
	replayCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print every effect while replaying")
}

func runReplays(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening recordings database: %w", err)
	}
	defer store.Close()

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunReplayBrowser(store, flagLimit, width, height)
	}

	summaries, err := store.RecentRecordings(flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving recordings: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println()
		fmt.Println("Play 'reflex play' to record one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-8s  %-16s  %-6s  %-5s  %-6s  %-7s  %s\n", "ID", "Date", "Rounds", "Lives", "Time", "Options", "Events")
	fmt.Printf("  %-8s  %-16s  %-6s  %-5s  %-6s  %-7s  %s\n", "--", "----", "------", "-----", "----", "-------", "------")

	for _, s := range summaries {
		fmt.Printf("  %-8s  %-16s  %-6d  %-5d  %-6s  %-7d  %d\n",
			s.ID.String()[:8],
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Rounds,
			s.Config.InitialLives,
			fmt.Sprintf("%gs", s.Config.TimeLimitSeconds),
			s.Config.OptionCount,
			s.EventCount,
		)
	}
	return nil
}

func runReplay(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening recordings database: %w", err)
	}
	defer store.Close()

	id, err := store.ResolveID(args[0])
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no recording matches %q", args[0])
	}
	if err != nil {
		return err
	}

	rec, err := store.Recording(id)
	if err != nil {
		return err
	}

	fmt.Printf("Recording %s (%s)\n", rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Seed %d, %d lives, %gs, %d points per hit, %d options, %d events\n",
		rec.Seed,
		rec.Config.InitialLives,
		rec.Config.TimeLimitSeconds,
		rec.Config.PointsPerCorrectAnswer,
		rec.Config.OptionCount,
		len(rec.Events),
	)
	fmt.Println()

	var dst round.Surface
	if flagTrace {
		dst = &traceSurface{}
	}

	outcomes, err := replay.Run(rec, dst)
	if err != nil {
		return err
	}

	if flagTrace {
		fmt.Println()
	}
	fmt.Println(tui.FormatOutcomes(outcomes))
	return nil
}

// traceSurface prints every effect as it is applied. Clock updates are
// printed only when the displayed value changes.
type traceSurface struct {
	clock string
}

func (t *traceSurface) MarkTarget(id int) {
	fmt.Printf("  %5s  target %d\n", t.clock, id)
}

func (t *traceSurface) UnmarkTarget(id int) {
	fmt.Printf("  %5s  unmark %d\n", t.clock, id)
}

func (t *traceSurface) ShowTime(secondsLeft float64) {
	clock := board.FormatClock(secondsLeft)
	if clock == t.clock {
		return
	}
	t.clock = clock
	fmt.Printf("  %5s  time\n", clock)
}

func (t *traceSurface) ShowScore(points int) {
	fmt.Printf("  %5s  %s\n", t.clock, board.FormatScore(points))
}

func (t *traceSurface) ShowLives(remaining int) {
	fmt.Printf("  %5s  lives %d\n", t.clock, remaining)
}

func (t *traceSurface) ShowGameOver(finalScore int) {
	fmt.Printf("  %5s  %s\n", t.clock, board.FormatGameOver(finalScore))
	t.clock = ""
}
