package models

import (
	"fmt"
	"math/rand/v2"
	"regexp"
)

// ApplicationIDPattern is the public shape of an application identifier.
var ApplicationIDPattern = regexp.MustCompile(`^BD-\d{10}$`)

// GenerateApplicationID produces a new identifier of the form BD-##########.
// Uniqueness is not guaranteed against storage; the store rejects collisions.
func GenerateApplicationID() string {
	return fmt.Sprintf("BD-%010d", rand.Int64N(10_000_000_000))
}

// ValidApplicationID reports whether id matches the BD-########## shape.
func ValidApplicationID(id string) bool {
	return ApplicationIDPattern.MatchString(id)
}
