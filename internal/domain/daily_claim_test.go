package domain

import (
	"testing"
	"time"

	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_dailyClaimDomain_TryClaimDaily(t *testing.T) {
	s := newSuite(t, nil)
	userID := testutil.User2.UserID

	result, err := s.dailyClaimDomain.TryClaimDaily(s.ctx, userID, 100)
	require.NoError(t, err)
	require.True(t, result.Claimed)
	require.Equal(t, int64(100), result.CoinBalance)
	require.Equal(t, s.now.Add(24*time.Hour), result.NextEligibleAt)

	// Second call within the window is a no-op.
	s.now = s.now.Add(23 * time.Hour)
	result, err = s.dailyClaimDomain.TryClaimDaily(s.ctx, userID, 100)
	require.NoError(t, err)
	require.False(t, result.Claimed)
	require.Equal(t, int64(100), result.CoinBalance)
	require.True(t, result.NextEligibleAt.Equal(s.now.Add(time.Hour)))

	entries, err := s.ledgerRepo.GetByUserID(s.ctx, userID, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, entity.LedgerDailyClaim, entries[0].Kind)

	// Exactly 24 hours after the first claim.
	s.now = s.now.Add(time.Hour)
	result, err = s.dailyClaimDomain.TryClaimDaily(s.ctx, userID, 100)
	require.NoError(t, err)
	require.True(t, result.Claimed)
	require.Equal(t, int64(200), result.CoinBalance)
	s.requireConserved(t, userID)
}

func Test_dailyClaimDomain_TryClaimDaily_NewUser(t *testing.T) {
	s := newSuite(t, nil)

	result, err := s.dailyClaimDomain.TryClaimDaily(s.ctx, "first-visit", 100)
	require.NoError(t, err)
	require.True(t, result.Claimed)
	s.requireConserved(t, "first-visit")
}

func Test_dailyClaimDomain_TryClaimDaily_Banned(t *testing.T) {
	s := newSuite(t, nil)

	_, err := s.dailyClaimDomain.TryClaimDaily(s.ctx, testutil.User3.UserID, 100)
	require.True(t, errorx.Is(err, errorx.AccountBanned))
	require.Equal(t, testutil.User3.CoinBalance, s.account(t, testutil.User3.UserID).CoinBalance)
}

func Test_dailyClaimDomain_ClaimDaily(t *testing.T) {
	s := newSuite(t, nil)
	ctx := s.userCtx(testutil.User1.UserID)

	status, err := s.dailyClaimDomain.GetDailyStatus(ctx, &model.GetDailyStatusRequest{})
	require.NoError(t, err)
	require.True(t, status.Eligible)
	require.True(t, status.FreeSpinEligible)

	resp, err := s.dailyClaimDomain.ClaimDaily(ctx, &model.ClaimDailyRequest{})
	require.NoError(t, err)
	require.True(t, resp.Claimed)
	require.Equal(t, int64(1100), resp.CoinBalance)

	resp, err = s.dailyClaimDomain.ClaimDaily(ctx, &model.ClaimDailyRequest{})
	require.NoError(t, err)
	require.False(t, resp.Claimed)
	require.Equal(t, s.now.Add(24*time.Hour).Format(time.RFC3339Nano), resp.NextEligibleAt)

	status, err = s.dailyClaimDomain.GetDailyStatus(ctx, &model.GetDailyStatusRequest{})
	require.NoError(t, err)
	require.False(t, status.Eligible)
	require.Equal(t, resp.NextEligibleAt, status.NextEligibleAt)
	require.True(t, status.FreeSpinEligible)
}
