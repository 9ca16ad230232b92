package blob

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"
)

const defaultExtension = "jpg"

// GenerateKey derives a storage key for an uploaded file:
//
//	YYYY-MM-DD/<millisecond-epoch>-<6 hex>.<ext>
//
// The UTC date prefix partitions the keyspace by day; the timestamp plus
// random suffix makes collisions negligible, so no uniqueness check against
// the store is performed. The extension comes from the original filename,
// lowercased, defaulting to "jpg".
func GenerateKey(filename string, now time.Time) string {
	now = now.UTC()

	suffix := make([]byte, 3)
	rand.Read(suffix) //nolint:errcheck // crypto/rand.Read never fails

	return fmt.Sprintf("%s/%d-%s.%s",
		now.Format(time.DateOnly),
		now.UnixMilli(),
		hex.EncodeToString(suffix),
		extension(filename),
	)
}

func extension(filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		return defaultExtension
	}
	return strings.ToLower(ext)
}
