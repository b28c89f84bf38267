package services

import "fmt"

const (
	kindProfile  = "profile"
	kindChild    = "child"
	kindProgress = "progress"
)

// storeKey is the kv_store key of one record kind for a user.
func storeKey(userID, kind string) string {
	return fmt.Sprintf("user:%s:%s", userID, kind)
}
