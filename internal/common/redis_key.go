package common

import (
	"fmt"
)

func RedisKeyAbuseCounter(identity, action string) string {
	return fmt.Sprintf("abuse:%s:%s", action, identity)
}
