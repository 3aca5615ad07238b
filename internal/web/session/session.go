package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// cookieSep separates the session ID from its signature in the cookie value.
const cookieSep = "."

// Store is the global session store instance.
var Store *session.Store

// Data represents the session data structure.
type Data struct {
	AdminID  uint64
	Username string
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	return json.Unmarshal(byteData, s)
}

// Destroy removes the session data for the given session ID.
func Destroy(sessionID string) error {
	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store with the provided storage backend.
func Init(storage storage.Storage) {
	if storage == nil {
		panic("storage is nil")
	}

	Store = session.New(session.Config{
		Storage: storage,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// SignCookie builds the session cookie value by appending an HMAC-SHA256
// signature of the session ID, so a tampered cookie never reaches the store.
func SignCookie(sessionID, secret string) string {
	return sessionID + cookieSep + signature(sessionID, secret)
}

// VerifyCookie checks the signature of a session cookie value and returns
// the embedded session ID.
func VerifyCookie(value, secret string) (string, bool) {
	sessionID, sig, found := strings.Cut(value, cookieSep)
	if !found || sessionID == "" {
		return "", false
	}

	if subtle.ConstantTimeCompare([]byte(sig), []byte(signature(sessionID, secret))) != 1 {
		return "", false
	}

	return sessionID, true
}

func signature(sessionID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(sessionID))

	return hex.EncodeToString(mac.Sum(nil))
}
