// Package filesystem enumerates directory trees for findr.
//
// # Overview
//
// Walk produces a lazy sequence of entries rooted at a path. Each item is
// either an Entry or a *TraversalError; a node that cannot be read is
// reported and skipped while the rest of the tree is still visited.
//
//   - Depth-first pre-order, the root first
//   - Children visited in lexical order of their names
//   - Symbolic links yielded as entries, never descended
//   - Optional depth limits through WalkOptions
//
// # Usage
//
// Walk a directory and report unreadable nodes:
//
//	for entry, err := range filesystem.Walk(".", filesystem.DefaultWalkOptions()) {
//	    if err != nil {
//	        fmt.Fprintln(os.Stderr, err)
//	        continue
//	    }
//	    fmt.Println(entry.Path)
//	}
//
// Limit the walk to the root's direct children:
//
//	opts := filesystem.WalkOptions{MinDepth: 1, MaxDepth: 1}
//	for entry, err := range filesystem.Walk("/etc", opts) {
//	    // ...
//	}
package filesystem
