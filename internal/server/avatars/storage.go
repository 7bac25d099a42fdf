// Package avatars stores uploaded profile pictures and returns their public URLs.
package avatars

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage saves an object under key and returns the URL it is served from.
type Storage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ObjectKey builds a unique key for an avatar of userID, keeping the
// extension of fileName.
func ObjectKey(userID, fileName string) string {
	d := time.Now()
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("avatars/%s/%d/%d/%d/%v%s", userID, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
