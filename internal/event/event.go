package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanComplete   Type = iota + 1
	EntrySkipped        // a directory entry could not be read
	MetadataFailed      // a candidate could not be stat'd
	HashFailed          // a candidate could not be read while hashing
	HashComplete
)

var typeNames = [...]string{
	ScanComplete:   "ScanComplete",
	EntrySkipped:   "EntrySkipped",
	MetadataFailed: "MetadataFailed",
	HashFailed:     "HashFailed",
	HashComplete:   "HashComplete",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Failure reports whether the event describes a skipped file.
func (t Type) Failure() bool {
	return t == EntrySkipped || t == MetadataFailed || t == HashFailed
}

// Event is a notification from the engine about a phase boundary or a file
// that was dropped from consideration.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string
	Size      int64 // file size, when known
	Total     int64 // files found (ScanComplete) or candidates (HashComplete)
	Error     error
}
