package id

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

var mu = &sync.Mutex{}

// GetUUID generates a new UUID
func GetUUID() string {
	mu.Lock()
	defer mu.Unlock()
	return uuid.NewString()
}

// GetUUIDWithoutHyphens generates a new UUID without hyphens
func GetUUIDWithoutHyphens() string {
	mu.Lock()
	defer mu.Unlock()
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
