package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampFormat is RFC3339 in UTC with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry is one registry mutation.
type Entry struct {
	Timestamp string `json:"ts"`
	User      string `json:"user"`
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`

	// Optional fields depending on operation.
	Code        string `json:"code,omitempty"`         // Every project operation.
	ProjectUUID string `json:"project_uuid,omitempty"` // For create/delete.
	Name        string `json:"name,omitempty"`         // For create/rename.
	Key         string `json:"key,omitempty"`          // For set/unset.
	Value       string `json:"value,omitempty"`        // For set.
}

// Logger appends entries to one audit file.
type Logger struct {
	path string
	user string
	host string
}

// New returns a Logger writing to path and stamping entries with user and host.
func New(path, user, host string) *Logger {
	return &Logger{path: path, user: user, host: host}
}

// PathFor returns the audit log kept beside a registry document.
func PathFor(registryPath string) string {
	dir := filepath.Dir(registryPath)
	base := strings.TrimSuffix(filepath.Base(registryPath), filepath.Ext(registryPath))
	return filepath.Join(dir, base+".audit.jsonl")
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Entry starts an entry for op with user and host filled in.
func (l *Logger) Entry(op string) Entry {
	return Entry{Operation: op, User: l.user, Host: l.host}
}

// Log appends an entry. Failures are dropped: a registry write that
// succeeded must not be reported as failed because its audit line wasn't.
func (l *Logger) Log(entry Entry) {
	if l == nil || l.path == "" {
		return
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	// #nosec G302 -- audit log should be readable by the whole studio.
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	// One write per line keeps appends from different machines whole.
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the log at path. A missing log has
// no entries.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data. Malformed lines, such as a torn
// final write, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}

// ForProject returns the entries touching code, ignoring case.
func ForProject(entries []Entry, code string) []Entry {
	var out []Entry
	for _, e := range entries {
		if strings.EqualFold(e.Code, code) {
			out = append(out, e)
		}
	}
	return out
}
