package musicmanager

import (
	"crypto/md5"
	"encoding/base64"
	"strings"
)

// TrackID derives the client identifier for a file from its raw bytes: an
// md5 digest, base64-encoded, with the trailing "==" padding stripped.
// The result is always 22 characters and identical for identical bytes.
//
// Tags are not stripped before hashing, so retagging a file changes its id
// and the file will be seen as new.
func TrackID(data []byte) string {
	sum := md5.Sum(data)
	return strings.TrimRight(base64.StdEncoding.EncodeToString(sum[:]), "=")
}
