package domain

import (
	"strings"
	"testing"

	"github.com/questx-lab/rewardengine/config"
	"github.com/questx-lab/rewardengine/internal/domain/abuse"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newKeywordGuard(keywords ...string) abuse.Guard {
	cfg := config.Default().Abuse
	cfg.BannedKeywords = keywords
	return abuse.NewGuard(abuse.NewMemoryCounter(), repository.NewAccountRepository(), cfg)
}

func Test_abuseDomain_CheckAction_KeywordBans(t *testing.T) {
	s := newSuite(t, newKeywordGuard("freemoney"))
	userID := testutil.User1.UserID

	resp, err := s.abuseDomain.CheckAction(s.userCtx(userID), &model.CheckActionRequest{
		Action:  abuse.ActionPost,
		Payload: "hello everyone",
	})
	require.NoError(t, err)
	require.True(t, resp.Allowed)

	_, err = s.abuseDomain.CheckAction(s.userCtx(userID), &model.CheckActionRequest{
		Action:  abuse.ActionComment,
		Payload: "Get FreeMoney here",
	})
	require.True(t, errorx.Is(err, errorx.ContentViolation))

	account := s.account(t, userID)
	require.True(t, account.Banned)
	require.Contains(t, account.BanReason, "freemoney")

	_, _, err = s.ledgerDomain.ApplyTransaction(s.ctx, userID, 10, entity.LedgerAdminAdjust, "after ban")
	require.True(t, errorx.Is(err, errorx.AccountBanned))

	_, err = s.abuseDomain.CheckAction(s.userCtx(userID), &model.CheckActionRequest{
		Action:  abuse.ActionPost,
		Payload: "hello again",
	})
	require.True(t, errorx.Is(err, errorx.AccountBanned))

	s.requireConserved(t, userID)
}

func Test_abuseDomain_CheckAction_RateLimitBans(t *testing.T) {
	s := newSuite(t, newKeywordGuard())
	userID := testutil.User2.UserID
	req := &model.CheckActionRequest{Action: abuse.ActionPost, Payload: "hi"}

	for i := 0; i < 5; i++ {
		_, err := s.abuseDomain.CheckAction(s.userCtx(userID), req)
		require.NoError(t, err, "post %d", i+1)
	}

	_, err := s.abuseDomain.CheckAction(s.userCtx(userID), req)
	require.True(t, errorx.Is(err, errorx.RateLimited))
	require.True(t, s.account(t, userID).Banned)
}

func Test_abuseDomain_CheckAction_InvalidRequest(t *testing.T) {
	s := newSuite(t, nil)
	userCtx := s.userCtx(testutil.User1.UserID)

	tests := []struct {
		name    string
		req     *model.CheckActionRequest
		anonym  bool
		wantErr errorx.Code
	}{
		{
			name:    "internal action",
			req:     &model.CheckActionRequest{Action: abuse.ActionDraw},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "unknown action",
			req:     &model.CheckActionRequest{Action: "like"},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "payload too long",
			req:     &model.CheckActionRequest{Action: abuse.ActionPost, Payload: strings.Repeat("a", maxPayloadLength+1)},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "no user",
			req:     &model.CheckActionRequest{Action: abuse.ActionPost},
			anonym:  true,
			wantErr: errorx.Unauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := userCtx
			if tt.anonym {
				ctx = s.ctx
			}

			_, err := s.abuseDomain.CheckAction(ctx, tt.req)
			require.True(t, errorx.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
