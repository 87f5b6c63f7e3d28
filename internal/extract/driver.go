package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dirmich/loom/lfl"
	"github.com/dirmich/loom/manifest"
)

var roomFilePattern = regexp.MustCompile(`^(\d{2})\.LFL$`)

// Progress is invoked once per room after it finishes (success or
// failure), for a caller-supplied progress indicator. Run serializes
// calls to Progress (each room runs in its own goroutine, §5), so an
// implementation never needs its own locking.
type Progress func(roomNumber int, err error)

// Run discovers every NN.LFL under inDir (§6), decrypts 00.LFL as the
// master index, extracts every room concurrently (§5: "rooms do not
// share state ... a trivial map"), and writes the manifest atomically
// to outDir/resources.json. jobs bounds concurrency; jobs<=0 means
// unbounded (errgroup.SetLimit(-1)).
func Run(ctx context.Context, inDir, outDir string, jobs int, game, version string, onProgress Progress) (manifest.Manifest, error) {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return manifest.Manifest{}, fmt.Errorf("reading input directory: %w", err)
	}

	var roomNumbers []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := roomFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		if n == 0 {
			continue // 00.LFL is the master index, not a room
		}
		roomNumbers = append(roomNumbers, n)
	}
	sort.Ints(roomNumbers)

	var routing map[string][]manifest.RoutingEntry
	if masterPath := filepath.Join(inDir, "00.LFL"); fileExists(masterPath) {
		raw, err := os.ReadFile(masterPath)
		if err == nil {
			if mi, err := lfl.ParseMasterIndex(lfl.Decrypt(raw)); err == nil {
				routing = buildRouting(mi)
			}
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return manifest.Manifest{}, fmt.Errorf("creating output directory: %w", err)
	}

	results := make([]RoomResult, len(roomNumbers))
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	var progressMu sync.Mutex
	for i, n := range roomNumbers {
		i, n := i, n
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			raw, err := os.ReadFile(filepath.Join(inDir, fmt.Sprintf("%02d.LFL", n)))
			if err != nil {
				results[i] = RoomResult{RoomNumber: n, Err: err}
			} else {
				results[i] = Room(n, raw, outDir)
			}
			if onProgress != nil {
				progressMu.Lock()
				onProgress(n, results[i].Err)
				progressMu.Unlock()
			}
			return nil // per-room errors are recorded, not propagated (§5/§7: one room's failure doesn't abort others)
		})
	}
	if err := g.Wait(); err != nil {
		return manifest.Manifest{}, err
	}

	b := manifest.NewBuilder(game, version)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		b.AddRoom(r.RoomNumber, r.Width, r.Height, r.Reserved, r.Resources)
	}
	b.SetRouting(routing)
	m := b.Build()

	if err := manifest.WriteAtomic(filepath.Join(outDir, "resources.json"), m); err != nil {
		return manifest.Manifest{}, fmt.Errorf("writing manifest: %w", err)
	}
	return m, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// buildRouting turns a parsed MasterIndex's four typed tables (§4.H
// ResourceIndex) into the manifest's routing section: global resource
// id -> {room, offset}, keyed by section name. Absent refs (§4.H: room
// 0 or offset 0xFFFF) carry no routing information and are omitted.
func buildRouting(mi *lfl.MasterIndex) map[string][]manifest.RoutingEntry {
	sections := map[string][]lfl.ResourceRef{
		"room":    mi.Room,
		"costume": mi.Costume,
		"script":  mi.Script,
		"sound":   mi.Sound,
	}
	routing := make(map[string][]manifest.RoutingEntry, len(sections))
	for name, refs := range sections {
		entries := []manifest.RoutingEntry{}
		for id, ref := range refs {
			if ref.Absent() {
				continue
			}
			entries = append(entries, manifest.RoutingEntry{ID: id, Room: ref.Room, Offset: ref.Offset})
		}
		routing[name] = entries
	}
	return routing
}
