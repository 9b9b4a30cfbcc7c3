// Package search runs the findr pipeline: walk each root, filter entries,
// and hand matches and traversal errors to separate channels of a Sink.
package search

import (
	"fmt"

	"github.com/mlioz/findr/pkg/filesystem"
	"github.com/mlioz/findr/pkg/filter"
	"github.com/mlioz/findr/pkg/logger"
)

// DefaultRoot is searched when no root is given.
const DefaultRoot = "."

// Sink receives pipeline output. Match is the result channel and
// Diagnostic the error channel; both are called from a single goroutine.
type Sink interface {
	Match(entry filesystem.Entry) error
	Diagnostic(err error)
}

// Summary counts what a run saw.
type Summary struct {
	Roots   int
	Visited int
	Matches int
	Errors  int
}

// Searcher applies one FilterSet to any number of roots.
type Searcher struct {
	filters  *filter.FilterSet
	walkOpts filesystem.WalkOptions
	log      logger.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithWalkOptions sets depth limits for every root.
func WithWalkOptions(opts filesystem.WalkOptions) Option {
	return func(s *Searcher) {
		s.walkOpts = opts
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l logger.Logger) Option {
	return func(s *Searcher) {
		s.log = l
	}
}

// New creates a Searcher. A nil FilterSet matches everything.
func New(filters *filter.FilterSet, opts ...Option) *Searcher {
	if filters == nil {
		filters = filter.MatchAll()
	}
	s := &Searcher{
		filters:  filters,
		walkOpts: filesystem.DefaultWalkOptions(),
		log:      logger.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run searches roots in order, sending matches to sink.Match in walk order
// and traversal errors to sink.Diagnostic. Traversal errors never stop the
// run; the returned error is set only when sink.Match fails.
func (s *Searcher) Run(roots []string, sink Sink) (Summary, error) {
	if len(roots) == 0 {
		roots = []string{DefaultRoot}
	}

	var total Summary
	for _, root := range roots {
		sum, err := s.runRoot(root, sink)
		total.Roots++
		total.Visited += sum.Visited
		total.Matches += sum.Matches
		total.Errors += sum.Errors
		if err != nil {
			return total, err
		}
	}

	s.log.Debug("search finished",
		logger.F("roots", total.Roots),
		logger.F("visited", total.Visited),
		logger.F("matches", total.Matches),
		logger.F("errors", total.Errors))
	return total, nil
}

func (s *Searcher) runRoot(root string, sink Sink) (Summary, error) {
	log := s.log.WithFields(logger.F("root", root))
	log.Debug("walking root")

	var sum Summary
	for entry, err := range filesystem.Walk(root, s.walkOpts) {
		if err != nil {
			sum.Errors++
			log.Debug("traversal error", logger.F("error", err))
			sink.Diagnostic(err)
			continue
		}

		sum.Visited++
		if !s.filters.Match(entry) {
			continue
		}

		if err := sink.Match(entry); err != nil {
			return sum, fmt.Errorf("writing match %s: %w", entry.Path, err)
		}
		sum.Matches++
	}

	log.Debug("root done", logger.F("matches", sum.Matches), logger.F("errors", sum.Errors))
	return sum, nil
}
