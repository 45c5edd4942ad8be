package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestSeedShape(t *testing.T) {
	st := Seed(fixedClock())

	require.Len(t, st.Accounts, 4)
	require.Len(t, st.Products, 6)
	require.Empty(t, st.Orders)
	assert.Equal(t, SeedBaseID, st.NextID)

	admin, ok := st.FindAccount("4")
	require.True(t, ok)
	assert.True(t, models.IsAdminName(admin.Name))
	habanero, ok := st.FindProduct("10")
	require.True(t, ok)
	assert.Equal(t, "Habanero", habanero.Name)
	assert.Equal(t, "4.5", habanero.Price.String())
	assert.Equal(t, 25, habanero.Stock)
	assert.Equal(t, habanero.ShortDescription, habanero.Description)
}

func TestNewIDSharedCounter(t *testing.T) {
	st := Seed(fixedClock())
	assert.Equal(t, "100", st.NewID())
	assert.Equal(t, "101", st.NewID())
	assert.Equal(t, 102, st.NextID)
}

func TestFindAndRemove(t *testing.T) {
	st := Seed(fixedClock())

	_, ok := st.FindAccount("999")
	assert.False(t, ok)

	removed, ok := st.RemoveAccount("2")
	require.True(t, ok)
	assert.Equal(t, "Spice Explorer", removed.Name)
	_, ok = st.FindAccount("2")
	assert.False(t, ok)
	assert.Len(t, st.Accounts, 3)

	_, ok = st.RemoveProduct("nope")
	assert.False(t, ok)

	product, ok := st.RemoveProduct("12")
	require.True(t, ok)
	assert.Equal(t, "Jalapeno", product.Name)
	assert.Len(t, st.Products, 5)
}

func TestReplaceProduct(t *testing.T) {
	st := Seed(fixedClock())
	product, _ := st.FindProduct("11")
	product.Stock = 1
	require.True(t, st.ReplaceProduct(product))
	got, _ := st.FindProduct("11")
	assert.Equal(t, 1, got.Stock)

	assert.False(t, st.ReplaceProduct(models.Product{ID: "nope"}))
}

func TestCloneIsDeep(t *testing.T) {
	st := Seed(fixedClock())
	st.AddOrder(models.Order{ID: "100", AccountID: "1", Items: []models.OrderItem{{ProductID: "10", Qty: 1}}})

	cp := st.Clone()
	cp.Products[0].Stock = 0
	cp.Orders[0].Items[0].Qty = 99
	cp.Accounts = cp.Accounts[:1]

	assert.Equal(t, 25, st.Products[0].Stock)
	assert.Equal(t, 1, st.Orders[0].Items[0].Qty)
	assert.Len(t, st.Accounts, 4)
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	s := New(WithClock(fixedClock))
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx *State) error {
		tx.AddAccount(models.Account{ID: tx.NewID(), Name: "New"})
		return nil
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Len(t, snap.Accounts, 5)
	assert.Equal(t, 101, snap.NextID)
}

func TestWithTxDiscardsOnError(t *testing.T) {
	s := New(WithClock(fixedClock))
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx *State) error {
		product, _ := tx.FindProduct("10")
		product.Stock = 0
		tx.ReplaceProduct(product)
		tx.NewID()
		return boom
	})
	require.ErrorIs(t, err, boom)

	snap := s.Snapshot()
	product, _ := snap.FindProduct("10")
	assert.Equal(t, 25, product.Stock)
	assert.Equal(t, SeedBaseID, snap.NextID)
}

func TestResetReplacesEverything(t *testing.T) {
	s := New(WithClock(fixedClock))
	ctx := context.Background()

	require.NoError(t, s.WithTx(ctx, func(tx *State) error {
		tx.RemoveProduct("10")
		tx.AddOrder(models.Order{ID: tx.NewID(), AccountID: "1"})
		return nil
	}))

	fresh, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Accounts, 4)
	assert.Len(t, fresh.Products, 6)
	assert.Empty(t, fresh.Orders)
	assert.Equal(t, SeedBaseID, fresh.NextID)

	again, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, again)
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.View(ctx, func(*State) error { return nil }))
	assert.Error(t, s.WithTx(ctx, func(*State) error { return nil }))
	_, err := s.Reset(ctx)
	assert.Error(t, err)
}

func TestConcurrentWritersDoNotLoseIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithTx(ctx, func(tx *State) error {
				tx.AddAccount(models.Account{ID: tx.NewID()})
				return nil
			})
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Len(t, snap.Accounts, 54)
	assert.Equal(t, SeedBaseID+50, snap.NextID)
}
