package validators

import (
	"net/http"
	"strings"
)

// QueryText returns the trimmed query parameter, or "" when absent.
func QueryText(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
