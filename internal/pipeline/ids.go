package pipeline

import "github.com/google/uuid"

// newJobID returns a random job id.
func newJobID() string {
	return uuid.NewString()
}
