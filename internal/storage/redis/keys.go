package redis

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/buitransport/internal/storage"
)

// Key prefix for all web client data
const keyPrefix = "btweb"

// Hash fields of a credential entry
const (
	fieldAccessToken  = "access_token"
	fieldRefreshToken = "refresh_token"
)

// credentialKey returns the Redis key for a client's credential hash.
// The client id is the browser cookie value, so only its digest is used in the key.
func credentialKey(clientID storage.ClientID) string {
	sum := blake2b.Sum256([]byte(clientID))
	return fmt.Sprintf("%s:credential:%s", keyPrefix, hex.EncodeToString(sum[:]))
}
