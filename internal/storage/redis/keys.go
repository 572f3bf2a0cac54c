package redis

import (
	"fmt"

	"github.com/mcoot/bankit-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "bankit"

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}
