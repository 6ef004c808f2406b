package lib

import (
	"crypto/sha256"
	"encoding/hex"
)

// AccountTag identifies an account (server + username) without storing the server details
func AccountTag(serverURL, username string) string {
	hasher := sha256.New()
	hasher.Write([]byte(username))
	hasher.Write([]byte(":"))
	hasher.Write([]byte(serverURL))
	hasher.Write([]byte("\n"))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ShortTag is the display version of an account tag
func ShortTag(tag string) string {
	if len(tag) > 16 {
		return tag[0:16]
	}
	return tag
}
