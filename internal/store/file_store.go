package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"

	"storefront/internal/domain"
)

const (
	credentialsFile    = "credentials.json"
	credentialsEncFile = "credentials.enc"
	shopSessionFile    = "shop_session.json"
)

// ErrPassphraseRequired is returned when the credentials on disk are
// encrypted and no passphrase was supplied.
var ErrPassphraseRequired = errors.New("credentials are encrypted; passphrase required")

// FileStore keeps credentials and the shop session under one directory.
type FileStore struct {
	dir string
	mu  sync.Mutex

	kdf kdfParams
}

func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir, kdf: defaultKDF} }

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string { return s.dir }

// ---------- Credentials ----------

// SaveCredentials writes credentials.enc when passphrase is set and
// credentials.json otherwise, removing the other form so only one exists.
func (s *FileStore) SaveCredentials(passphrase string, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plain := filepath.Join(s.dir, credentialsFile)
	enc := filepath.Join(s.dir, credentialsEncFile)

	if passphrase == "" {
		if err := writeJSON(plain, creds, 0o600); err != nil {
			return err
		}
		return removeFile(enc)
	}

	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	blob, err := seal(passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	if err := writeFile(enc, blob, 0o600); err != nil {
		return err
	}
	return removeFile(plain)
}

func (s *FileStore) LoadCredentials(passphrase string) (domain.Credentials, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var creds domain.Credentials

	blob, err := readFile(filepath.Join(s.dir, credentialsEncFile))
	if err != nil {
		return creds, false, err
	}
	if blob != nil {
		if passphrase == "" {
			return creds, false, ErrPassphraseRequired
		}
		raw, err := open(passphrase, blob)
		if err != nil {
			return creds, false, err
		}
		if err := json.Unmarshal(raw, &creds); err != nil {
			return creds, false, err
		}
		return creds, creds.Token != "", nil
	}

	ok, err := readJSON(filepath.Join(s.dir, credentialsFile), &creds)
	if err != nil || !ok {
		return domain.Credentials{}, false, err
	}
	return creds, creds.Token != "", nil
}

func (s *FileStore) DeleteCredentials() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := removeFile(filepath.Join(s.dir, credentialsFile)); err != nil {
		return err
	}
	return removeFile(filepath.Join(s.dir, credentialsEncFile))
}

// ---------- Shop session ----------

func (s *FileStore) SaveShopSession(session domain.ShopSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(filepath.Join(s.dir, shopSessionFile), session, 0o600)
}

func (s *FileStore) LoadShopSession() (domain.ShopSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session domain.ShopSession
	ok, err := readJSON(filepath.Join(s.dir, shopSessionFile), &session)
	if err != nil || !ok || session.ShopID == 0 {
		return domain.ShopSession{}, false, err
	}
	return session, true, nil
}

func (s *FileStore) ClearShopSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(filepath.Join(s.dir, shopSessionFile))
}

var (
	_ domain.CredentialStore  = (*FileStore)(nil)
	_ domain.ShopSessionStore = (*FileStore)(nil)
)
