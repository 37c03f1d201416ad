package interfaces

// withPersistWarning adds a persistence_warning field to a success payload
// when the user's most recent durable write failed, so the caller knows the
// change is committed in memory but may not have saved. A nil check leaves
// the payload unchanged.
func withPersistWarning(check func(userID string) error, userID string, payload map[string]interface{}) map[string]interface{} {
	if check == nil {
		return payload
	}
	if err := check(userID); err != nil {
		payload["persistence_warning"] = err.Error()
	}
	return payload
}
