package xredis

import (
	"strconv"
	"time"
)

func formatScore(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
