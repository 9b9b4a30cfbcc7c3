package filesystem

import (
	"errors"
	"iter"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/karrick/godirwalk"
)

// NoDepthLimit disables WalkOptions.MaxDepth.
const NoDepthLimit = -1

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	MaxDepth int // Directories at this depth are not descended (NoDepthLimit: unlimited)
	MinDepth int // Entries above this depth are not yielded but still descended
}

// DefaultWalkOptions walks the whole tree and yields every entry, the root included.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{MaxDepth: NoDepthLimit}
}

// errStopped halts godirwalk once the consumer stops ranging.
var errStopped = errors.New("walk stopped by consumer")

// Walk returns a lazy depth-first sequence of the entries under root,
// root included. Unreadable nodes are yielded as *TraversalError and the
// walk moves on to the next sibling. Symbolic links are never descended.
//
// Nothing is read until the sequence is ranged over; every range starts a
// fresh walk.
func Walk(root string, opts WalkOptions) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		root = filepath.Clean(root)
		stopped := false

		emit := func(entry Entry, err error) bool {
			if !yield(entry, err) {
				stopped = true
			}
			return !stopped
		}

		err := godirwalk.Walk(root, &godirwalk.Options{
			AllowNonDirectory: true,
			Callback: func(osPathname string, de *godirwalk.Dirent) error {
				if !utf8.ValidString(de.Name()) {
					if !emit(Entry{}, &TraversalError{Path: osPathname, Err: ErrInvalidEncoding}) {
						return errStopped
					}
					return godirwalk.SkipThis
				}

				entry := Entry{
					Path:  osPathname,
					Name:  de.Name(),
					Type:  TypeOf(de.ModeType()),
					Depth: depth(root, osPathname),
				}

				if entry.Depth >= opts.MinDepth && !emit(entry, nil) {
					return errStopped
				}

				if opts.MaxDepth >= 0 && entry.Depth >= opts.MaxDepth && entry.Type == Directory {
					return godirwalk.SkipThis
				}
				return nil
			},
			ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
				// Callback errors come back through here as well
				if stopped || errors.Is(err, errStopped) {
					return godirwalk.Halt
				}
				if !emit(Entry{}, &TraversalError{Path: osPathname, Err: err}) {
					return godirwalk.Halt
				}
				return godirwalk.SkipNode
			},
		})

		// The root itself could not be read
		if err != nil && !stopped && !errors.Is(err, errStopped) {
			yield(Entry{}, &TraversalError{Path: root, Err: err})
		}
	}
}

// depth counts the path components between root and path.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
