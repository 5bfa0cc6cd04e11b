package proc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultRoot is the procfs mount point scanned when no override is given.
const DefaultRoot = "/proc"

// Collector enumerates a procfs-style directory and produces the ordered
// record sequence the tree builder consumes: one record per process in
// ascending pid order, with thread records interleaved directly after
// their owning process.
type Collector struct {
	root   string
	clock  clock.Clock
	logger *zap.SugaredLogger
}

// NewCollector creates a Collector rooted at root. An empty root selects
// DefaultRoot; a nil logger disables logging.
func NewCollector(root string, logger *zap.SugaredLogger) *Collector {
	if root == "" {
		root = DefaultRoot
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Collector{
		root:   root,
		clock:  clock.New(),
		logger: logger,
	}
}

// WithClock replaces the wall clock used for scan timing. Tests inject a
// mock here.
func (c *Collector) WithClock(clk clock.Clock) *Collector {
	c.clock = clk
	return c
}

// Snapshot scans the procfs root once and returns the full record set.
// Processes that exit between enumeration and read are skipped; any other
// read or parse failure aborts the snapshot.
func (c *Collector) Snapshot() ([]Record, error) {
	start := c.clock.Now()

	pids, err := c.listPIDs(c.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	records := make([]Record, 0, len(pids))
	for _, pid := range pids {
		rec, err := c.readStatus(filepath.Join(c.root, strconv.Itoa(pid), "status"), "")
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debugw("process exited during scan", "pid", pid)
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)

		if rec.HasThreads() {
			threads, err := c.threadRecords(rec)
			if err != nil {
				return nil, err
			}
			records = append(records, threads...)
		}
	}

	c.logger.Debugw("procfs scan complete",
		"root", c.root,
		"records", len(records),
		"duration", c.clock.Since(start))
	return records, nil
}

// threadRecords enumerates owner's task namespace and parses the status of
// every thread except the main-thread duplicate, relabeling each with the
// owner's name.
func (c *Collector) threadRecords(owner Record) ([]Record, error) {
	taskDir := filepath.Join(c.root, strconv.Itoa(owner.PID), "task")
	tids, err := c.listPIDs(taskDir)
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Debugw("task dir vanished during scan", "pid", owner.PID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	tids = lo.Filter(tids, func(tid int, _ int) bool {
		return tid != owner.PID
	})

	records := make([]Record, 0, len(tids))
	for _, tid := range tids {
		rec, err := c.readStatus(filepath.Join(taskDir, strconv.Itoa(tid), "status"), owner.Name)
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debugw("thread exited during scan", "pid", owner.PID, "tid", tid)
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// listPIDs returns the numeric directory names under dir in ascending
// numeric order. Errors are returned raw; callers decide whether a
// missing directory is a race or a failure.
func (c *Collector) listPIDs(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	pids := lo.FilterMap(entries, func(e os.DirEntry, _ int) (int, bool) {
		if !e.IsDir() {
			return 0, false
		}
		n, convErr := strconv.Atoi(e.Name())
		return n, convErr == nil && n > 0
	})
	sort.Ints(pids)
	return pids, nil
}

// readStatus opens and parses one status file. A missing file surfaces as
// fs.ErrNotExist so callers can treat it as an exit race; any other open
// failure is ErrUnreadable.
func (c *Collector) readStatus(path, nameOverride string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("%w: open %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	rec, err := ParseStatus(f, nameOverride)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
