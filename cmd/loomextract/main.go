// Command loomextract extracts the full asset catalog out of a set of
// LFL room containers into inspectable, standard-format artifacts plus
// a JSON manifest (spec §1, §6). This entry point is deliberately thin
// — the CLI surface and progress logging are explicitly out of the
// core's scope.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dirmich/loom/internal/extract"
)

func main() {
	inDir := flag.String("in", ".", "directory containing NN.LFL room files and 00.LFL")
	outDir := flag.String("out", "out", "output directory for extracted artifacts and resources.json")
	jobs := flag.Int("jobs", 0, "max concurrent room extractions (0 = unbounded)")
	game := flag.String("game", "Loom", "game name recorded in the manifest")
	version := flag.String("version", "1.0", "version string recorded in the manifest")
	flag.Parse()

	width := progressWidth()
	count := 0

	m, err := extract.Run(context.Background(), *inDir, *outDir, *jobs, *game, *version, func(room int, rerr error) {
		count++
		status := "ok"
		if rerr != nil {
			status = fmt.Sprintf("FAILED: %v", rerr)
		}
		line := fmt.Sprintf("[%d] room %02d: %s", count, room, status)
		if len(line) > width && width > 0 {
			line = line[:width]
		}
		fmt.Fprintln(os.Stderr, line)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "loomextract: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "extracted %d room(s), %d resource(s) -> %s/resources.json\n",
		m.TotalRooms, m.TotalResources, *outDir)
}

// progressWidth reports the terminal width for clamping progress lines,
// falling back to 0 (no clamping) when stdout isn't a TTY.
func progressWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
