package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTeamStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Leader", "9000000000", "")
	a := f.register(t, "A", "9000000001", u.ReferralCode)
	b := f.register(t, "B", "9000000002", u.ReferralCode)
	// second-level referral is not part of u's team
	f.register(t, "C", "9000000003", a.ReferralCode)

	d1, err := f.wallet.Deposit(ctx, a.ID, dec("500"), "UTR000000001")
	require.NoError(t, err)
	d2, err := f.wallet.Deposit(ctx, b.ID, dec("500"), "UTR000000002")
	require.NoError(t, err)
	_, err = f.wallet.Deposit(ctx, b.ID, dec("900"), "UTR000000003")
	require.NoError(t, err)
	_, err = f.admin.Approve(ctx, d1.ID)
	require.NoError(t, err)
	_, err = f.admin.Approve(ctx, d2.ID)
	require.NoError(t, err)

	f.withBank(t, a.ID)
	w, err := f.wallet.Withdraw(ctx, a.ID, dec("200"), "")
	require.NoError(t, err)
	_, err = f.admin.Approve(ctx, w.ID)
	require.NoError(t, err)

	stats, err := f.team.CalculateTeamStats(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stats.TotalRecharge.Equal(dec("1000")), stats.TotalRecharge.String())
	assert.True(t, stats.TotalWithdraw.Equal(dec("200")), stats.TotalWithdraw.String())
	assert.Equal(t, 2, stats.TeamSize)
}

func TestCalculateTeamStatsEmptyAndUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Loner", "9000000000", "")

	stats, err := f.team.CalculateTeamStats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TeamSize)
	assert.True(t, stats.TotalRecharge.IsZero())

	stats, err = f.team.CalculateTeamStats(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TeamSize)
	assert.True(t, stats.TotalWithdraw.IsZero())
}
