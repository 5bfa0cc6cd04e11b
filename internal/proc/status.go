// Package proc reads process and thread metadata from a procfs-style
// directory tree and converts status blobs into normalized records.
package proc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sentinel errors distinguishing unreadable sources from malformed content.
var (
	// ErrUnreadable indicates a status source could not be opened or read.
	ErrUnreadable = errors.New("status source unreadable")
	// ErrMalformed indicates a status blob with missing or non-numeric
	// required fields.
	ErrMalformed = errors.New("malformed status record")
)

// Record is one normalized process or thread status record.
type Record struct {
	Name    string `json:"name"`
	PID     int    `json:"pid"`
	TGID    int    `json:"tgid"`
	PPID    int    `json:"ppid"`
	Threads int    `json:"threads"`
}

// Valid reports whether the record carries everything the tree builder
// needs. PPID zero is legal: init's parent is the kernel context.
func (r Record) Valid() bool {
	return r.Name != "" && r.PID > 0 && r.TGID > 0 && r.PPID >= 0
}

// IsThread reports whether the record describes a thread rather than a
// thread-group leader.
func (r Record) IsThread() bool {
	return r.TGID != r.PID
}

// HasThreads reports whether the record is a process owning more than one
// thread, i.e. whether its task namespace needs a second enumeration pass.
func (r Record) HasThreads() bool {
	return r.Threads > 1 && !r.IsThread()
}

// ParseStatus parses one line-oriented "Key:\tvalue" status blob into a
// Record. Unrecognized keys are ignored. Parsing stops once the name and
// all four numeric fields are populated. If nameOverride is non-empty it
// replaces the parsed name; thread records are relabeled this way with
// their owning process's name.
func ParseStatus(r io.Reader, nameOverride string) (Record, error) {
	rec := Record{Threads: -1}
	var gotName, gotPID, gotTGID, gotPPID, gotThreads bool

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}
		value = strings.TrimLeft(value, " \t")

		switch key {
		case "Name":
			rec.Name = value
			gotName = true
		case "Pid":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Record{}, fmt.Errorf("%w: Pid %q", ErrMalformed, value)
			}
			rec.PID = n
			gotPID = true
		case "Tgid":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Record{}, fmt.Errorf("%w: Tgid %q", ErrMalformed, value)
			}
			rec.TGID = n
			gotTGID = true
		case "PPid":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Record{}, fmt.Errorf("%w: PPid %q", ErrMalformed, value)
			}
			rec.PPID = n
			gotPPID = true
		case "Threads":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Record{}, fmt.Errorf("%w: Threads %q", ErrMalformed, value)
			}
			rec.Threads = n
			gotThreads = true
		}

		if gotName && gotPID && gotTGID && gotPPID && gotThreads {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	if nameOverride != "" {
		rec.Name = nameOverride
	}
	if !gotName || !gotPID || !gotTGID || !gotPPID || !rec.Valid() {
		return Record{}, fmt.Errorf("%w: required fields missing", ErrMalformed)
	}
	return rec, nil
}
