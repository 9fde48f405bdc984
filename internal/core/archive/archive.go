// Package archive opens a Twitter data export (a zip of JavaScript-wrapped
// JSON files) and decodes the members the extractor needs
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"

	perr "taupe/internal/platform/errors"
	"taupe/internal/platform/logger"
)

// Archive is an opened export. Close releases the underlying file, if any
type Archive struct {
	zr     *zip.Reader
	closer io.Closer
	source string
}

// Open reads the zip central directory from r
func Open(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, malformedZip(err)
	}
	return &Archive{zr: zr, source: "stream"}, nil
}

// OpenFile opens the archive at path
func OpenFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFile, "open %s", path)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeFile, "stat %s", path)
	}
	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, malformedZip(err)
	}
	return &Archive{zr: zr, closer: f, source: path}, nil
}

// ReadAll buffers r fully (zip needs random access) and opens the result.
// Used for archives piped through stdin or uploaded over HTTP
func ReadAll(r io.Reader) (*Archive, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeFile, "read archive")
	}
	logger.Named("archive").Debug().Int("bytes", len(b)).Msg("buffered archive")
	return Open(bytes.NewReader(b), int64(len(b)))
}

// Close releases the archive
func (a *Archive) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Source names where the archive came from, for logs
func (a *Archive) Source() string { return a.source }

// Members lists member names in central directory order
func (a *Archive) Members() []string {
	out := make([]string, 0, len(a.zr.File))
	for _, f := range a.zr.File {
		out = append(out, f.Name)
	}
	return out
}

// Read returns the raw bytes of member m, prefix included
func (a *Archive) Read(m Member) ([]byte, error) {
	for _, f := range a.zr.File {
		if f.Name != m.Name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, malformedZip(err)
		}
		defer func() { _ = rc.Close() }()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, perr.WithField(malformedZip(err), m.Name)
		}
		return b, nil
	}
	logger.Named("archive").Debug().
		Str("want", m.Name).
		Strs("members", a.Members()).
		Msg("required member missing")
	return nil, perr.WithField(perr.Malformedf("archive has no %s member", m.Name), m.Name)
}

// Accounts decodes data/account.js
func (a *Archive) Accounts() ([]Account, error) {
	items, err := readMember[accountItem](a, AccountMember)
	if err != nil {
		return nil, err
	}
	out := make([]Account, len(items))
	for i, it := range items {
		out[i] = it.Account
	}
	return out, nil
}

// Tweets decodes data/tweets.js
func (a *Archive) Tweets() ([]Tweet, error) {
	items, err := readMember[tweetItem](a, TweetsMember)
	if err != nil {
		return nil, err
	}
	out := make([]Tweet, len(items))
	for i, it := range items {
		out[i] = it.Tweet
	}
	logger.Named("archive").Debug().Int("tweets", len(out)).Msg("extracted tweets from the tweets file")
	return out, nil
}

// Likes decodes data/like.js
func (a *Archive) Likes() ([]Like, error) {
	items, err := readMember[likeItem](a, LikesMember)
	if err != nil {
		return nil, err
	}
	out := make([]Like, len(items))
	for i, it := range items {
		out[i] = it.Like
	}
	logger.Named("archive").Debug().Int("likes", len(out)).Msg("extracted likes from the likes file")
	return out, nil
}

func readMember[T any](a *Archive, m Member) ([]T, error) {
	raw, err := a.Read(m)
	if err != nil {
		return nil, err
	}
	return Decode[T](m, raw)
}

func malformedZip(err error) error {
	switch {
	case errors.Is(err, zip.ErrFormat):
		return perr.Wrap(err, perr.ErrorCodeMalformedArchive, "input does not appear to be a zip file")
	case errors.Is(err, zip.ErrChecksum), errors.Is(err, zip.ErrAlgorithm):
		return perr.Wrap(err, perr.ErrorCodeMalformedArchive, "unable to read zip archive due to corruption or format error")
	default:
		return perr.Wrap(err, perr.ErrorCodeMalformedArchive, "unable to read zip archive")
	}
}
