package postgres

import (
	"fmt"

	"github.com/google/uuid"
)

// ---- Common Helper Functions ----

// parseUserUUID parses a user ID string to uuid.UUID with consistent error message.
func parseUserUUID(userID string) (uuid.UUID, error) {
	return parseUUID("user", userID)
}

func parseUUID(field, value string) (uuid.UUID, error) {
	u, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id: %w", field, err)
	}
	return u, nil
}
