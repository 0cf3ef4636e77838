package domain

import (
	"testing"

	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_accountDomain_Ban(t *testing.T) {
	s := newSuite(t, nil)

	_, err := s.accountDomain.Ban(s.ctx, &model.BanRequest{UserID: testutil.User2.UserID})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = s.accountDomain.Ban(s.ctx, &model.BanRequest{UserID: testutil.User2.UserID, Reason: "spam"})
	require.NoError(t, err)

	// Banning twice is a no-op.
	_, err = s.accountDomain.Ban(s.ctx, &model.BanRequest{UserID: testutil.User2.UserID, Reason: "again"})
	require.NoError(t, err)

	resp, err := s.accountDomain.GetAccount(s.ctx, &model.GetAccountRequest{UserID: testutil.User2.UserID})
	require.NoError(t, err)
	require.True(t, resp.Account.Banned)
	require.Equal(t, "spam", resp.Account.BanReason)

	// Unknown users are created banned.
	_, err = s.accountDomain.Ban(s.ctx, &model.BanRequest{UserID: "unknown", Reason: "bot"})
	require.NoError(t, err)
	require.True(t, s.account(t, "unknown").Banned)
}

func Test_accountDomain_Unban(t *testing.T) {
	s := newSuite(t, nil)

	_, err := s.accountDomain.Unban(s.ctx, &model.UnbanRequest{UserID: testutil.User3.UserID})
	require.NoError(t, err)
	require.False(t, s.account(t, testutil.User3.UserID).Banned)

	_, err = s.accountDomain.Unban(s.ctx, &model.UnbanRequest{UserID: "missing"})
	require.True(t, errorx.Is(err, errorx.NotFound))

	_, err = s.accountDomain.GetAccount(s.ctx, &model.GetAccountRequest{UserID: "missing"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}
