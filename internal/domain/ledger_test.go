package domain

import (
	"math/rand"
	"testing"

	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_ledgerDomain_ApplyTransaction(t *testing.T) {
	type args struct {
		userID string
		amount int64
		kind   entity.LedgerKind
	}

	tests := []struct {
		name        string
		args        args
		wantBalance int64
		wantErr     error
	}{
		{
			name:        "credit",
			args:        args{userID: testutil.User1.UserID, amount: 50, kind: entity.LedgerUploadReward},
			wantBalance: 1050,
		},
		{
			name:        "debit",
			args:        args{userID: testutil.User1.UserID, amount: -1000, kind: entity.LedgerAdminAdjust},
			wantBalance: 0,
		},
		{
			name:    "insufficient funds",
			args:    args{userID: testutil.User1.UserID, amount: -1001, kind: entity.LedgerAdminAdjust},
			wantErr: errorx.New(errorx.InsufficientFunds, "Not enough coins"),
		},
		{
			name:    "zero amount",
			args:    args{userID: testutil.User1.UserID, amount: 0, kind: entity.LedgerAdminAdjust},
			wantErr: errorx.New(errorx.BadRequest, "Amount must be non-zero"),
		},
		{
			name:    "banned account cannot receive credits",
			args:    args{userID: testutil.User3.UserID, amount: 10, kind: entity.LedgerRefund},
			wantErr: errorx.New(errorx.AccountBanned, "The account is banned"),
		},
		{
			name:        "new account",
			args:        args{userID: "newcomer", amount: 7, kind: entity.LedgerRefund},
			wantBalance: 7,
		},
		{
			name:    "invalid kind",
			args:    args{userID: testutil.User1.UserID, amount: 1, kind: entity.LedgerKind("gift")},
			wantErr: errorx.New(errorx.BadRequest, "Invalid ledger kind gift"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSuite(t, nil)
			before, _ := s.accountRepo.GetByID(s.ctx, tt.args.userID)

			balance, entryID, err := s.ledgerDomain.ApplyTransaction(
				s.ctx, tt.args.userID, tt.args.amount, tt.args.kind, tt.name)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.Equal(t, tt.wantErr.Error(), err.Error())
				require.ErrorIs(t, err, tt.wantErr)

				if before != nil {
					after := s.account(t, tt.args.userID)
					require.Equal(t, before.CoinBalance, after.CoinBalance)
					s.requireConserved(t, tt.args.userID)
				}

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantBalance, balance)
			require.NotZero(t, entryID)
			s.requireConserved(t, tt.args.userID)

			entries, err := s.ledgerRepo.GetByUserID(s.ctx, tt.args.userID, 0, 1)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			require.Equal(t, entryID, entries[0].ID)
			require.Equal(t, tt.args.amount, entries[0].Amount)
			require.Equal(t, tt.wantBalance, entries[0].BalanceAfter)
			require.Equal(t, tt.args.kind, entries[0].Kind)
		})
	}
}

func Test_ledgerDomain_Conservation(t *testing.T) {
	s := newSuite(t, nil)
	r := rand.New(rand.NewSource(42))
	userID := testutil.User2.UserID

	for i := 0; i < 200; i++ {
		amount := r.Int63n(201) - 100
		if amount == 0 {
			continue
		}

		before, _ := s.accountRepo.GetByID(s.ctx, userID)
		_, _, err := s.ledgerDomain.ApplyTransaction(s.ctx, userID, amount, entity.LedgerAdminAdjust, "random")
		if err != nil {
			require.True(t, errorx.Is(err, errorx.InsufficientFunds), "unexpected error %v", err)
			require.NotNil(t, before)
			require.Less(t, before.CoinBalance+amount, int64(0))
			require.Equal(t, before.CoinBalance, s.account(t, userID).CoinBalance)
		}

		s.requireConserved(t, userID)
	}
}

func Test_ledgerDomain_BanHaltsSpending(t *testing.T) {
	s := newSuite(t, nil)
	userID := testutil.User1.UserID

	_, err := s.accountDomain.Ban(s.ctx, &model.BanRequest{UserID: userID, Reason: "bot"})
	require.NoError(t, err)

	for _, amount := range []int64{10, -10} {
		_, _, err = s.ledgerDomain.ApplyTransaction(s.ctx, userID, amount, entity.LedgerAdminAdjust, "after ban")
		require.True(t, errorx.Is(err, errorx.AccountBanned))
	}

	_, _, err = s.ticketDomain.PurchaseTickets(s.ctx, userID, 1, 10)
	require.True(t, errorx.Is(err, errorx.AccountBanned))

	_, err = s.dailyClaimDomain.TryClaimDaily(s.ctx, userID, 100)
	require.True(t, errorx.Is(err, errorx.AccountBanned))

	_, err = s.drawDomain.Draw(s.userCtx(userID), &model.DrawRequest{})
	require.True(t, errorx.Is(err, errorx.AccountBanned))

	_, err = s.accountDomain.Unban(s.ctx, &model.UnbanRequest{UserID: userID})
	require.NoError(t, err)

	balance, _, err := s.ledgerDomain.ApplyTransaction(s.ctx, userID, 10, entity.LedgerAdminAdjust, "after unban")
	require.NoError(t, err)
	require.Equal(t, int64(1010), balance)
	s.requireConserved(t, userID)
}

func Test_ledgerDomain_GetLedger(t *testing.T) {
	s := newSuite(t, nil)
	userID := testutil.User2.UserID

	for i := int64(1); i <= 3; i++ {
		_, _, err := s.ledgerDomain.ApplyTransaction(s.ctx, userID, i, entity.LedgerRefund, "refund")
		require.NoError(t, err)
	}

	resp, err := s.ledgerDomain.GetLedger(s.userCtx(userID), &model.GetLedgerRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, int64(3), resp.Entries[0].Amount)
	require.Equal(t, int64(6), resp.Entries[0].BalanceAfter)
	require.Equal(t, int64(2), resp.Entries[1].Amount)

	_, err = s.ledgerDomain.GetLedger(s.ctx, &model.GetLedgerRequest{})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))
}

func Test_ledgerDomain_GetBalance(t *testing.T) {
	s := newSuite(t, nil)

	resp, err := s.ledgerDomain.GetBalance(s.userCtx(testutil.User1.UserID), &model.GetBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1000), resp.Account.CoinBalance)
	require.Equal(t, int64(2), resp.Account.TicketCount)

	resp, err = s.ledgerDomain.GetBalance(s.userCtx("stranger"), &model.GetBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, "stranger", resp.Account.UserID)
	require.Zero(t, resp.Account.CoinBalance)
}

func Test_ledgerDomain_Reward(t *testing.T) {
	s := newSuite(t, nil)

	resp, err := s.ledgerDomain.Reward(s.ctx, &model.RewardRequest{
		UserID: testutil.User2.UserID, Amount: 25, Kind: "upload_reward", Description: "upload",
	})
	require.NoError(t, err)
	require.Equal(t, int64(25), resp.CoinBalance)

	_, err = s.ledgerDomain.Reward(s.ctx, &model.RewardRequest{
		UserID: testutil.User2.UserID, Amount: 25, Kind: "draw_win",
	})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = s.ledgerDomain.Reward(s.ctx, &model.RewardRequest{
		UserID: testutil.User2.UserID, Amount: -25, Kind: "refund",
	})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func Test_ledgerDomain_AdjustBalanceAndVerify(t *testing.T) {
	s := newSuite(t, nil)
	userID := testutil.User1.UserID

	_, err := s.ledgerDomain.AdjustBalance(s.ctx, &model.AdjustBalanceRequest{UserID: userID, Amount: -5})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	resp, err := s.ledgerDomain.AdjustBalance(s.ctx, &model.AdjustBalanceRequest{
		UserID: userID, Amount: -5, Description: "correction",
	})
	require.NoError(t, err)
	require.Equal(t, int64(995), resp.CoinBalance)

	verify, err := s.ledgerDomain.VerifyConservation(s.ctx, &model.VerifyConservationRequest{UserID: userID})
	require.NoError(t, err)
	require.True(t, verify.Consistent)
	require.Equal(t, int64(995), verify.CoinSum)
	require.Equal(t, int64(2), verify.TicketSum)

	// Tamper with the cached balance.
	err = s.accountRepo.IncreaseBalance(s.ctx, userID, entity.CurrencyCoin, 1)
	require.NoError(t, err)

	verify, err = s.ledgerDomain.VerifyConservation(s.ctx, &model.VerifyConservationRequest{UserID: userID})
	require.NoError(t, err)
	require.False(t, verify.Consistent)
}
