package common

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/questx-lab/rewardengine/pkg/xcontext"
)

const MaxUserIDLength = 64

// ValidateUserID checks the canonical identity given by the identity service.
func ValidateUserID(userID string) error {
	if userID == "" {
		return errors.New("empty user id")
	}

	if len(userID) > MaxUserIDLength {
		return errors.New("user id is too long")
	}

	if strings.IndexFunc(userID, func(r rune) bool {
		return unicode.IsSpace(r) || !unicode.IsPrint(r)
	}) >= 0 {
		return errors.New("user id contains invalid characters")
	}

	return nil
}

// Pagination normalizes the offset and limit of list requests.
func Pagination(ctx context.Context, offset, limit int) (int, int) {
	cfg := xcontext.Configs(ctx).ApiServer
	if offset < 0 {
		offset = 0
	}

	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	return offset, limit
}
