package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStatus creates dir/status with a minimal procfs status blob.
func writeStatus(t *testing.T, dir, name string, pid, tgid, ppid, threads int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	blob := fmt.Sprintf("Name:\t%s\nState:\tS (sleeping)\nTgid:\t%d\nPid:\t%d\nPPid:\t%d\nThreads:\t%d\n",
		name, tgid, pid, ppid, threads)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte(blob), 0o644))
}

func procDir(root string, pid int) string {
	return filepath.Join(root, strconv.Itoa(pid))
}

func taskDir(root string, pid, tid int) string {
	return filepath.Join(procDir(root, pid), "task", strconv.Itoa(tid))
}

func TestCollectorSnapshot(t *testing.T) {
	t.Run("returns records in ascending pid order", func(t *testing.T) {
		root := t.TempDir()
		writeStatus(t, procDir(root, 100), "sshd", 100, 100, 1, 1)
		writeStatus(t, procDir(root, 1), "init", 1, 1, 0, 1)
		writeStatus(t, procDir(root, 42), "cron", 42, 42, 1, 1)

		records, err := NewCollector(root, nil).Snapshot()
		require.NoError(t, err)

		names := lo.Map(records, func(r Record, _ int) string { return r.Name })
		assert.Equal(t, []string{"init", "cron", "sshd"}, names)
	})

	t.Run("interleaves thread records after their owner with the owner's name", func(t *testing.T) {
		root := t.TempDir()
		writeStatus(t, procDir(root, 1), "init", 1, 1, 0, 1)
		writeStatus(t, procDir(root, 50), "worker", 50, 50, 1, 3)
		// Main-thread duplicate must be excluded.
		writeStatus(t, taskDir(root, 50, 50), "worker", 50, 50, 1, 3)
		writeStatus(t, taskDir(root, 50, 52), "renamed-thread", 52, 50, 50, 3)
		writeStatus(t, taskDir(root, 50, 51), "renamed-thread", 51, 50, 50, 3)
		writeStatus(t, procDir(root, 60), "sshd", 60, 60, 1, 1)

		records, err := NewCollector(root, nil).Snapshot()
		require.NoError(t, err)
		require.Len(t, records, 5)

		assert.Equal(t, "init", records[0].Name)
		assert.Equal(t, "worker", records[1].Name)
		assert.Equal(t, 51, records[2].PID)
		assert.Equal(t, "worker", records[2].Name, "thread label comes from the owner")
		assert.Equal(t, 52, records[3].PID)
		assert.True(t, records[3].IsThread())
		assert.Equal(t, "sshd", records[4].Name)
	})

	t.Run("ignores non-numeric entries and plain files", func(t *testing.T) {
		root := t.TempDir()
		writeStatus(t, procDir(root, 1), "init", 1, 1, 0, 1)
		require.NoError(t, os.MkdirAll(filepath.Join(root, "self"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "uptime"), []byte("123\n"), 0o644))

		records, err := NewCollector(root, nil).Snapshot()
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("skips processes that exited between readdir and open", func(t *testing.T) {
		root := t.TempDir()
		writeStatus(t, procDir(root, 1), "init", 1, 1, 0, 1)
		// A pid dir with no status file looks like an exit race.
		require.NoError(t, os.MkdirAll(procDir(root, 200), 0o755))

		records, err := NewCollector(root, nil).Snapshot()
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("fails with ErrUnreadable when the root is missing", func(t *testing.T) {
		_, err := NewCollector(filepath.Join(t.TempDir(), "nope"), nil).Snapshot()
		assert.ErrorIs(t, err, ErrUnreadable)
	})

	t.Run("fails with ErrMalformed on broken status content", func(t *testing.T) {
		root := t.TempDir()
		dir := procDir(root, 1)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "status"),
			[]byte("Name:\tinit\nTgid:\toops\n"), 0o644))

		_, err := NewCollector(root, nil).Snapshot()
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("empty root yields an empty record set", func(t *testing.T) {
		records, err := NewCollector(t.TempDir(), nil).Snapshot()
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("works with a mock clock", func(t *testing.T) {
		root := t.TempDir()
		writeStatus(t, procDir(root, 1), "init", 1, 1, 0, 1)

		c := NewCollector(root, nil).WithClock(clock.NewMock())
		records, err := c.Snapshot()
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestCollectorDefaults(t *testing.T) {
	c := NewCollector("", nil)
	assert.Equal(t, DefaultRoot, c.root)
}
