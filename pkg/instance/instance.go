package instance

import "os"

// GetID returns the process instance identifier used to tag log lines.
func GetID() string {
	for _, key := range []string{"DYNO", "SPS_INSTANCE_ID"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
