package usecase

import (
	"context"
	"testing"

	"elitepainters/internal/entity"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Admin(t *testing.T) {
	ctx := context.Background()

	customers := &fakeUserRepo{}
	c1, err := customers.Create(ctx, entity.User{Name: "Mere", Email: "mere@example.com"})
	require.NoError(t, err)

	quotes, _, _, notifier := newQuotes(t)
	_, err = quotes.Create(ctx, entity.QuoteRequest{Name: "Mere", Area: 40})
	require.NoError(t, err)
	<-notifier.sent

	employees := NewEmployeeUsecase(newFakeEmployeeRepo(), newFakeImages(), zerolog.Nop())
	_, err = employees.Create(ctx, entity.Employee{Name: "Ravi", Role: "Painter"}, nil)
	require.NoError(t, err)

	chat, _, _ := newChat("a1")
	_, err = chat.Send(ctx, customer(c1), c1, "hello")
	require.NoError(t, err)

	uc := NewDashboardUsecase(customers, quotes, employees, chat)
	got, err := uc.Admin(ctx, admin("a2"))
	require.NoError(t, err)
	assert.Equal(t, entity.AdminDashboard{
		CustomerCount:   1,
		QuoteCount:      1,
		ActiveEmployees: 1,
		NewQuotes:       1,
		UnreadMessages:  1,
	}, got)

	_, err = uc.Admin(ctx, customer(c1))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDashboard_AdminWithoutIdentity(t *testing.T) {
	quotes, _, _, _ := newQuotes(t)
	employees := NewEmployeeUsecase(newFakeEmployeeRepo(), newFakeImages(), zerolog.Nop())
	chat, _, _ := newChat("")

	uc := NewDashboardUsecase(&fakeUserRepo{}, quotes, employees, chat)
	got, err := uc.Admin(context.Background(), admin("a1"))
	require.NoError(t, err)
	assert.Zero(t, got.UnreadMessages)
}

func TestDashboard_Customer(t *testing.T) {
	ctx := context.Background()

	customers := &fakeUserRepo{}
	c1, err := customers.Create(ctx, entity.User{Name: "Mere", Email: "mere@example.com"})
	require.NoError(t, err)

	quotes, _, _, _ := newQuotes(t)
	employees := NewEmployeeUsecase(newFakeEmployeeRepo(), newFakeImages(), zerolog.Nop())
	chat, _, _ := newChat("a1")
	_, err = chat.Send(ctx, admin("a1"), c1, "your quote is ready")
	require.NoError(t, err)

	uc := NewDashboardUsecase(customers, quotes, employees, chat)
	got, err := uc.Customer(ctx, customer(c1))
	require.NoError(t, err)
	assert.Equal(t, "Mere", got.Customer.Name)
	assert.Equal(t, int64(1), got.UnreadMessages)

	_, err = uc.Customer(ctx, customer("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}
