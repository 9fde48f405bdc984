// Package account resolves the archive owner's handle
package account

import (
	"strings"

	"taupe/internal/core/archive"
	perr "taupe/internal/platform/errors"
	"taupe/internal/platform/logger"
)

// Resolve returns the username of the first account record.
// An archive without an account record, or with a blank username, is malformed.
func Resolve(records []archive.Account) (string, error) {
	if len(records) == 0 {
		return "", perr.WithField(perr.Malformedf("account file holds no account records"), archive.AccountMember.Name)
	}
	handle := strings.TrimSpace(records[0].Username)
	if handle == "" {
		return "", perr.WithField(perr.Malformedf("account record has no username"), "username")
	}
	logger.Named("account").Debug().Str("handle", handle).Msg("found account handle")
	return handle, nil
}

// FromArchive reads data/account.js and resolves the handle
func FromArchive(a *archive.Archive) (string, error) {
	records, err := a.Accounts()
	if err != nil {
		return "", err
	}
	return Resolve(records)
}
