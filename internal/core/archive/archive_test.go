package archive

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	perr "taupe/internal/platform/errors"
	"taupe/internal/platform/logger"
	kit "taupe/internal/platform/testkit"
)

const (
	accountJS = `window.YTD.account.part0 = [{"account":{"username":"alice","accountId":"42"}}]`
	tweetsJS  = `window.YTD.tweets.part0 = [{"tweet":{"id":"1","id_str":"1","created_at":"Mon Jan 01 00:00:00 +0000 2024","full_text":"hello","entities":{"urls":[]}}}]`
	likesJS   = `window.YTD.like.part0 = [{"like":{"tweetId":"9","expandedUrl":"https://twitter.com/i/web/status/9"}}]`
)

func fixture(t *testing.T) []byte {
	t.Helper()
	return kit.Zip(t, map[string]string{
		AccountMember.Name: accountJS,
		TweetsMember.Name:  tweetsJS,
		LikesMember.Name:   likesJS,
	})
}

func TestOpen_ReadsAllMembers(t *testing.T) {
	b := fixture(t)
	a, err := Open(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = a.Close() }()

	acc, err := a.Accounts()
	if err != nil || len(acc) != 1 || acc[0].Username != "alice" || acc[0].AccountID != "42" {
		t.Fatalf("Accounts = %+v, %v", acc, err)
	}

	tw, err := a.Tweets()
	if err != nil || len(tw) != 1 {
		t.Fatalf("Tweets = %+v, %v", tw, err)
	}
	if tw[0].IDStr != "1" || tw[0].FullText == nil || *tw[0].FullText != "hello" {
		t.Fatalf("tweet decoded wrong: %+v", tw[0])
	}
	if tw[0].InReplyToStatusIDStr != nil {
		t.Fatalf("absent reply field should stay nil")
	}

	lk, err := a.Likes()
	if err != nil || len(lk) != 1 || lk[0].ExpandedURL != "https://twitter.com/i/web/status/9" {
		t.Fatalf("Likes = %+v, %v", lk, err)
	}

	if got := a.Members(); len(got) != 3 {
		t.Fatalf("Members = %v", got)
	}
}

func TestOpenFile_And_ReadAll(t *testing.T) {
	b := fixture(t)
	p := kit.WriteFile(t, "archive.zip", b)

	a, err := OpenFile(p)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if a.Source() != p {
		t.Fatalf("Source = %q", a.Source())
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close should be a no-op: %v", err)
	}

	a, err = ReadAll(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if _, err := a.Tweets(); err != nil {
		t.Fatalf("Tweets after ReadAll: %v", err)
	}
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile("/nonexistent/archive.zip")
	if !perr.IsCode(err, perr.ErrorCodeFile) {
		t.Fatalf("missing file should be a file error, got %v", err)
	}
}

func TestOpen_NotAZip(t *testing.T) {
	b := []byte("this is plainly not a zip archive")
	_, err := Open(bytes.NewReader(b), int64(len(b)))
	if !perr.IsCode(err, perr.ErrorCodeMalformedArchive) {
		t.Fatalf("non-zip should be malformed, got %v", err)
	}

	p := kit.WriteFile(t, "bogus.zip", b)
	if _, err := OpenFile(p); !perr.IsCode(err, perr.ErrorCodeMalformedArchive) {
		t.Fatalf("non-zip file should be malformed, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestReadAll_ReadError(t *testing.T) {
	if _, err := ReadAll(failingReader{}); !perr.IsCode(err, perr.ErrorCodeFile) {
		t.Fatalf("read failure should be a file error, got %v", err)
	}
}

func TestMissingMember(t *testing.T) {
	b := kit.Zip(t, map[string]string{AccountMember.Name: accountJS})
	a, err := Open(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err = a.Likes()
	if !perr.IsCode(err, perr.ErrorCodeMalformedArchive) {
		t.Fatalf("missing member should be malformed, got %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != LikesMember.Name {
		t.Fatalf("missing member should name the member, got %v", err)
	}
}

func TestMissingMember_TracesMembers(t *testing.T) {
	kit.Serial(t)
	var buf bytes.Buffer
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: &buf})
	t.Cleanup(func() { logger.Init(logger.FromEnv()) })

	b := kit.Zip(t, map[string]string{AccountMember.Name: accountJS})
	a, err := Open(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := a.Tweets(); err == nil {
		t.Fatalf("expected missing member error")
	}
	out := buf.String()
	kit.MustContain(t, out, "required member missing")
	kit.MustContain(t, out, `"want":"`+TweetsMember.Name+`"`)
	kit.MustContain(t, out, `"members":["`+AccountMember.Name+`"]`)
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		data string
		n    int
		ok   bool
	}{
		{"valid", tweetsJS, 1, true},
		{"empty array", "window.YTD.tweets.part0 = []", 0, true},
		{"too short", "window.YTD", 0, false},
		{"wrong prefix", "var something.tweets.part0 = []", 0, false},
		{"no payload", "window.YTD.tweets.part0 =    ", 0, false},
		{"bad json", "window.YTD.tweets.part0 = [{", 0, false},
		{"wrong shape", `window.YTD.tweets.part0 = {"tweet":{}}`, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Decode[tweetItem](TweetsMember, []byte(c.data))
			if c.ok {
				if err != nil || len(got) != c.n {
					t.Fatalf("Decode = %d items, %v", len(got), err)
				}
				return
			}
			if !perr.IsCode(err, perr.ErrorCodeMalformedArchive) {
				t.Fatalf("want malformed archive, got %v", err)
			}
			if !strings.Contains(err.Error(), TweetsMember.Name) {
				t.Fatalf("error should mention member: %v", err)
			}
		})
	}
}

func TestDecode_LikesPrefixLeavesSpace(t *testing.T) {
	got, err := Decode[likeItem](LikesMember, []byte(likesJS))
	if err != nil || len(got) != 1 || got[0].Like.TweetID != "9" {
		t.Fatalf("likes decode = %+v, %v", got, err)
	}
}

func TestID_Unmarshal(t *testing.T) {
	data := `window.YTD.tweets.part0 = [{"tweet":{"id":123,"id_str":"123"}},{"tweet":{"id":null}}]`
	got, err := Decode[tweetItem](TweetsMember, []byte(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0].Tweet.ID != "123" || got[1].Tweet.ID != "" {
		t.Fatalf("ids = %q %q", got[0].Tweet.ID, got[1].Tweet.ID)
	}
}
