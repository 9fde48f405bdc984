// Package service implements the extract service
package service

import (
	"context"
	"slices"
	"time"

	"taupe/internal/core/account"
	"taupe/internal/core/archive"
	"taupe/internal/core/classify"
	"taupe/internal/core/projection"
	perr "taupe/internal/platform/errors"
	"taupe/internal/platform/logger"
	dom "taupe/internal/services/extract/domain"
)

// Service implements domain.RunnerPort
type Service struct {
	Opts dom.Options
	Rec  dom.Recorder
}

// New constructs an extract service. A nil recorder discards metrics and an
// unset mode means projection.Default
func New(opts dom.Options, rec dom.Recorder) *Service {
	if rec == nil {
		rec = dom.NopRecorder{}
	}
	if opts.Mode == projection.ModeUnknown {
		opts.Mode = projection.Default
	}
	return &Service{Opts: opts, Rec: rec}
}

// Run resolves the owner, classifies every record the mode needs, sorts the
// rows and projects them into output lines
func (s *Service) Run(ctx context.Context, a *archive.Archive) (dom.Result, error) {
	start := time.Now()
	res, err := s.run(ctx, a)
	s.Rec.RecordDuration(time.Since(start))
	if err != nil {
		s.Rec.RecordFailure(perr.CodeOf(err).String())
		return dom.Result{}, perr.WithOp(err, "extract.run")
	}
	for cat, n := range res.Counts {
		s.Rec.RecordRows(string(cat), n)
	}
	s.Rec.RecordRun(res.Mode.String(), len(res.Lines))
	return res, nil
}

func (s *Service) run(ctx context.Context, a *archive.Archive) (dom.Result, error) {
	log := logger.C(ctx)
	mode := s.Opts.Mode

	handle, err := account.FromArchive(a)
	if err != nil {
		return dom.Result{}, err
	}
	log.Debug().Str("source", a.Source()).Str("mode", mode.String()).Bool("canonical", s.Opts.Canonical).
		Msg("parsing archive")

	var rows []classify.Row
	switch mode.Source() {
	case archive.LikesMember:
		rows, err = s.likes(ctx, a, handle)
	default:
		rows, err = s.tweets(ctx, a, handle)
	}
	if err != nil {
		return dom.Result{}, err
	}

	slices.SortStableFunc(rows, func(x, y classify.Row) int {
		switch {
		case x.Less(y):
			return -1
		case y.Less(x):
			return 1
		}
		return 0
	})

	counts := dom.Counts{}
	for _, r := range rows {
		counts[r.Category]++
	}
	lines := projection.ProjectAll(mode, rows)

	log.Debug().Str("handle", handle).Int("rows", len(rows)).Int("lines", len(lines)).Msg("extraction done")
	return dom.Result{Handle: handle, Mode: mode, Rows: rows, Lines: lines, Counts: counts}, nil
}

func (s *Service) tweets(ctx context.Context, a *archive.Archive, handle string) ([]classify.Row, error) {
	recs, err := a.Tweets()
	if err != nil {
		return nil, err
	}
	rows := make([]classify.Row, 0, len(recs))
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return nil, perr.Interrupted(err)
		}
		row, err := classify.Tweet(rec, handle, s.Opts.Canonical)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Service) likes(ctx context.Context, a *archive.Archive, handle string) ([]classify.Row, error) {
	recs, err := a.Likes()
	if err != nil {
		return nil, err
	}
	if s.Opts.Canonical {
		logger.C(ctx).Debug().Msg("converting https://twitter.com/i/web URLs")
	}
	rows := make([]classify.Row, 0, len(recs))
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return nil, perr.Interrupted(err)
		}
		row, err := classify.Like(rec, handle, s.Opts.Canonical)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
