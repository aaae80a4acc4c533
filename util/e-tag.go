package util

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// GenerateETag returns a strong, quoted ETag for content. Byte slices and
// strings are hashed as-is; anything else is hashed by its JSON encoding.
func GenerateETag(content any) string {
	var data []byte

	switch v := content.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		var err error
		data, err = jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(content)
		if err != nil {
			data = fmt.Appendf(nil, "%v", content)
		}
	}

	hash := sha1.Sum(data)
	return `"` + hex.EncodeToString(hash[:]) + `"`
}

// ETagMatches reports whether an If-None-Match header value matches etag.
// Weak validators compare equal to their strong form.
func ETagMatches(ifNoneMatch, etag string) bool {
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}

	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}
