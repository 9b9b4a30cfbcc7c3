package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
)

// EntryType classifies a filesystem node.
type EntryType int

const (
	// Unknown is any node that is not a directory, regular file or symlink
	// (sockets, named pipes, devices).
	Unknown EntryType = iota
	Directory
	File
	SymbolicLink
)

// String returns the CLI token for the type ("d", "f", "l").
func (t EntryType) String() string {
	switch t {
	case Directory:
		return "d"
	case File:
		return "f"
	case SymbolicLink:
		return "l"
	default:
		return "?"
	}
}

// ParseEntryType maps a CLI token to its EntryType.
func ParseEntryType(token string) (EntryType, error) {
	switch token {
	case "d":
		return Directory, nil
	case "f":
		return File, nil
	case "l":
		return SymbolicLink, nil
	default:
		return Unknown, fmt.Errorf("unknown entry type %q (want d, f or l)", token)
	}
}

// TypeOf classifies mode bits as returned by lstat. A symlink is always a
// SymbolicLink, whether or not its target exists.
func TypeOf(mode fs.FileMode) EntryType {
	switch {
	case mode&fs.ModeSymlink != 0:
		return SymbolicLink
	case mode.IsDir():
		return Directory
	case mode.IsRegular():
		return File
	default:
		return Unknown
	}
}

// Entry is one node produced by Walk.
type Entry struct {
	Path  string    // Cleaned path, prefixed by the walk root
	Name  string    // Base name
	Type  EntryType // Resolved from the node's own metadata
	Depth int       // 0 for the root
}

// ErrInvalidEncoding marks a node whose name is not valid UTF-8.
var ErrInvalidEncoding = errors.New("name is not valid UTF-8")

// TraversalError reports a node that could not be read. The walk that
// produced it continues with the next node.
type TraversalError struct {
	Path string
	Err  error
}

// Error returns a single-line description of the failure
func (e *TraversalError) Error() string {
	if errors.Is(e.Err, ErrInvalidEncoding) {
		return fmt.Sprintf("%s: %v", strconv.Quote(e.Path), e.Err)
	}

	// *fs.PathError already names the path
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}
