package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	perr "taupe/internal/platform/errors"
)

// loaderPrefix opens every data member ("window.YTD.<name>.part0 = ")
const loaderPrefix = "window.YTD."

// Decode strips m's loader assignment from data and decodes the JSON array
// that follows into []T. Any shape problem is reported as a malformed archive
// with the member name as the field.
func Decode[T any](m Member, data []byte) ([]T, error) {
	if len(data) < m.PrefixLen {
		return nil, malformed(m, fmt.Errorf("member is %d bytes, shorter than its %d byte prefix", len(data), m.PrefixLen))
	}
	if !bytes.HasPrefix(data, []byte(loaderPrefix)) {
		return nil, malformed(m, errors.New("missing window.YTD loader prefix"))
	}

	payload := bytes.TrimSpace(data[m.PrefixLen:])
	if len(payload) == 0 {
		return nil, malformed(m, errors.New("empty payload"))
	}

	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, malformed(m, describeJSONError(err))
	}
	return out, nil
}

func malformed(m Member, cause error) error {
	return perr.WithField(perr.Wrap(cause, perr.ErrorCodeMalformedArchive, m.Name), m.Name)
}

// describeJSONError keeps decoder errors short but positional
func describeJSONError(err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return fmt.Errorf("invalid json at offset %d: %w", se.Offset, err)
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return fmt.Errorf("unexpected %s for %s: %w", te.Value, te.Field, err)
	}
	return err
}
