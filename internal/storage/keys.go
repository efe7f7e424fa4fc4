package storage

import (
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// ObjectKey builds a collision-free storage key for an uploaded file:
// <folder>/<unix-millis>-<uuid><ext>. The original name only contributes
// its extension.
func ObjectKey(folder, originalName string) string {
	ext := path.Ext(originalName)
	return fmt.Sprintf("%s/%d-%s%s", folder, time.Now().UnixMilli(), uuid.New(), ext)
}
