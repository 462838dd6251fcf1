package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, r repo.Repositories, phone, code string) models.User {
	t.Helper()
	u, err := r.Users.Create(context.Background(), models.User{
		Name: "u" + phone, Phone: phone, ReferralCode: code, Balance: decimal.Zero,
	})
	require.NoError(t, err)
	return u
}

func TestUsersUniqueIndexes(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	u := seedUser(t, r, "9000000000", "CAT-1000")

	_, err := r.Users.Create(ctx, models.User{Phone: "9000000000", ReferralCode: "CAT-2000"})
	assert.ErrorIs(t, err, repo.ErrPhoneTaken)
	_, err = r.Users.Create(ctx, models.User{Phone: "9000000001", ReferralCode: "CAT-1000"})
	assert.ErrorIs(t, err, repo.ErrReferralCodeTaken)

	byPhone, err := r.Users.GetByPhone(ctx, "9000000000")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byPhone.ID)
	byCode, err := r.Users.GetByReferralCode(ctx, "CAT-1000")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byCode.ID)

	_, err = r.Users.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestReturnedUsersAreDetached(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	u := seedUser(t, r, "9000000000", "CAT-1000")
	got, err := r.Users.UpdateBankDetails(ctx, u.ID, models.BankDetails{HolderName: "A", AccountNumber: "1", IFSC: "X"})
	require.NoError(t, err)

	got.BankDetails.IFSC = "changed"
	again, err := r.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", again.BankDetails.IFSC)
}

func TestAdjustRefusesNegative(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	u := seedUser(t, r, "9000000000", "CAT-1000")

	bal, err := r.Balances.Adjust(ctx, u.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(100)))

	_, err = r.Balances.Adjust(ctx, u.ID, decimal.NewFromInt(-101))
	assert.ErrorIs(t, err, repo.ErrInsufficientFunds)
	cur, err := r.Balances.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, cur.Equal(decimal.NewFromInt(100)))

	_, err = r.Balances.Adjust(ctx, "ghost", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestAdjustCreditsNegativeBalance(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	u := seedUser(t, r, "9000000000", "CAT-1000")
	require.NoError(t, r.Balances.Set(ctx, u.ID, decimal.NewFromInt(-1500)))

	bal, err := r.Balances.Adjust(ctx, u.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(-500)), bal.String())

	_, err = r.Balances.Adjust(ctx, u.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, repo.ErrInsufficientFunds)
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	u := seedUser(t, r, "9000000000", "CAT-1000")
	require.NoError(t, r.Balances.Set(ctx, u.ID, decimal.NewFromInt(1000)))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Balances.Adjust(ctx, u.ID, decimal.NewFromInt(-150))
		}()
	}
	wg.Wait()

	cur, err := r.Balances.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, cur.Equal(decimal.NewFromInt(100)), cur.String())
}

func TestTransitionIsCompareAndSet(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	tx, err := r.Transactions.Create(ctx, models.Transaction{UserID: "u1", Type: models.TxnDeposit, Amount: decimal.NewFromInt(5), Status: models.TxnPending})
	require.NoError(t, err)

	got, applied, err := r.Transactions.Transition(ctx, tx.ID, models.TxnPending, models.TxnSuccess)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, models.TxnSuccess, got.Status)

	got, applied, err = r.Transactions.Transition(ctx, tx.ID, models.TxnPending, models.TxnFailed)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, models.TxnSuccess, got.Status)

	_, _, err = r.Transactions.Transition(ctx, "missing", models.TxnPending, models.TxnFailed)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTransactionListings(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	mk := func(user string, status models.TransactionStatus) models.Transaction {
		tx, err := r.Transactions.Create(ctx, models.Transaction{UserID: user, Type: models.TxnDeposit, Amount: decimal.NewFromInt(1), Status: status})
		require.NoError(t, err)
		return tx
	}
	first := mk("u1", models.TxnPending)
	mk("u2", models.TxnSuccess)
	last := mk("u1", models.TxnSuccess)

	mine, err := r.Transactions.ListByUser(ctx, "u1", 0, 0)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, last.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	page, err := r.Transactions.ListByUser(ctx, "u1", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.ID, page[0].ID)

	settled, err := r.Transactions.ListByUsers(ctx, []string{"u1", "u2"}, models.TxnSuccess)
	require.NoError(t, err)
	assert.Len(t, settled, 2)

	pending, err := r.Transactions.ListByStatus(ctx, models.TxnPending, 10, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestUserPlansDelete(t *testing.T) {
	r := NewRepositories(NewStore())
	ctx := context.Background()
	p, err := r.UserPlans.Create(ctx, models.UserPlan{UserID: "u1", PlanID: "plan_1", Status: models.UserPlanActive})
	require.NoError(t, err)

	require.NoError(t, r.UserPlans.Delete(ctx, p.ID))
	plans, err := r.UserPlans.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, plans)
}
