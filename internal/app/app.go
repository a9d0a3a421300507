package app

import (
	"storefront/internal/domain"
	"storefront/internal/logx"
)

// RestoreLogin installs the saved or environment-provided token on the API
// client. Having no token is not an error.
func (w *Wire) RestoreLogin() (domain.Credentials, bool, error) {
	creds, ok, err := w.Auth.Restore(w.Config.Passphrase, w.Config.Token)
	if err != nil {
		return creds, false, err
	}
	if ok {
		logx.Debug().Str("source", creds.Source).Str("user", creds.Username).Msg("token restored")
	}
	return creds, ok, nil
}
