package config

import "log"

// MustNonEmpty stops the process when a required setting is empty.
func MustNonEmpty[T ~string | ~[]byte](value T, envName string) {
	if len(value) == 0 {
		log.Fatalf("config: %s is required but empty", envName)
	}
}
