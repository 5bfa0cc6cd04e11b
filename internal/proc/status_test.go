package proc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sshdStatus = "Name:\tsshd\n" +
	"Umask:\t0022\n" +
	"State:\tS (sleeping)\n" +
	"Tgid:\t100\n" +
	"Ngid:\t0\n" +
	"Pid:\t100\n" +
	"PPid:\t1\n" +
	"TracerPid:\t0\n" +
	"Threads:\t1\n" +
	"VmPeak:\t  12345 kB\n"

func TestParseStatus(t *testing.T) {
	t.Run("parses all recognized fields", func(t *testing.T) {
		rec, err := ParseStatus(strings.NewReader(sshdStatus), "")
		require.NoError(t, err)

		assert.Equal(t, "sshd", rec.Name)
		assert.Equal(t, 100, rec.PID)
		assert.Equal(t, 100, rec.TGID)
		assert.Equal(t, 1, rec.PPID)
		assert.Equal(t, 1, rec.Threads)
	})

	t.Run("trims leading whitespace after the separator", func(t *testing.T) {
		blob := "Name:   spaced\nTgid:\t 7\nPid: 7\nPPid:\t1\nThreads: 1\n"
		rec, err := ParseStatus(strings.NewReader(blob), "")
		require.NoError(t, err)

		assert.Equal(t, "spaced", rec.Name)
		assert.Equal(t, 7, rec.TGID)
		assert.Equal(t, 7, rec.PID)
	})

	t.Run("ignores unrecognized keys and separator-less lines", func(t *testing.T) {
		blob := "garbage line\nName:\tinit\nCpus_allowed\nTgid:\t1\nPid:\t1\nPPid:\t0\nThreads:\t1\n"
		rec, err := ParseStatus(strings.NewReader(blob), "")
		require.NoError(t, err)

		assert.Equal(t, "init", rec.Name)
	})

	t.Run("accepts ppid zero for init", func(t *testing.T) {
		blob := "Name:\tinit\nTgid:\t1\nPid:\t1\nPPid:\t0\nThreads:\t1\n"
		rec, err := ParseStatus(strings.NewReader(blob), "")
		require.NoError(t, err)

		assert.Equal(t, 0, rec.PPID)
		assert.True(t, rec.Valid())
	})

	t.Run("name override replaces the parsed name", func(t *testing.T) {
		rec, err := ParseStatus(strings.NewReader(sshdStatus), "worker")
		require.NoError(t, err)

		assert.Equal(t, "worker", rec.Name)
	})

	t.Run("stops once all fields are populated", func(t *testing.T) {
		// The trailing non-numeric Pid line is never reached.
		blob := sshdStatus + "Pid:\tnot-a-number\n"
		rec, err := ParseStatus(strings.NewReader(blob), "")
		require.NoError(t, err)

		assert.Equal(t, 100, rec.PID)
	})

	t.Run("rejects non-numeric values", func(t *testing.T) {
		blob := "Name:\tbad\nTgid:\txx\nPid:\t5\nPPid:\t1\nThreads:\t1\n"
		_, err := ParseStatus(strings.NewReader(blob), "")
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("rejects records with missing required fields", func(t *testing.T) {
		blob := "Name:\tpartial\nPid:\t5\n"
		_, err := ParseStatus(strings.NewReader(blob), "")
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ParseStatus(strings.NewReader(""), "")
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestRecordPredicates(t *testing.T) {
	leader := Record{Name: "worker", PID: 50, TGID: 50, PPID: 1, Threads: 2}
	thread := Record{Name: "worker", PID: 51, TGID: 50, PPID: 50, Threads: 2}

	assert.False(t, leader.IsThread())
	assert.True(t, leader.HasThreads())
	assert.True(t, thread.IsThread())
	assert.False(t, thread.HasThreads(), "a thread never triggers task expansion")

	assert.False(t, Record{PID: 5, TGID: 5, PPID: 1}.Valid(), "empty name")
	assert.False(t, Record{Name: "x", TGID: 5, PPID: 1}.Valid(), "zero pid")
}
