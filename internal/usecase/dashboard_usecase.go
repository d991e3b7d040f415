package usecase

import (
	"context"
	"errors"

	"elitepainters/internal/entity"
	"elitepainters/internal/repository"
)

type DashboardUsecase interface {
	Admin(ctx context.Context, viewer *entity.TokenClaims) (entity.AdminDashboard, error)
	Customer(ctx context.Context, viewer *entity.TokenClaims) (entity.CustomerDashboard, error)
}

type dashboardUsecase struct {
	customerRepo repository.UserRepository
	quotes       QuoteUsecase
	employees    EmployeeUsecase
	chat         ChatUsecase
}

func NewDashboardUsecase(
	customerRepo repository.UserRepository,
	quotes QuoteUsecase,
	employees EmployeeUsecase,
	chat ChatUsecase,
) DashboardUsecase {
	return &dashboardUsecase{
		customerRepo: customerRepo,
		quotes:       quotes,
		employees:    employees,
		chat:         chat,
	}
}

func (u *dashboardUsecase) Admin(ctx context.Context, viewer *entity.TokenClaims) (entity.AdminDashboard, error) {
	if !viewer.IsAdmin() {
		return entity.AdminDashboard{}, ErrForbidden
	}

	var (
		dashboard entity.AdminDashboard
		err       error
	)
	if dashboard.CustomerCount, err = u.customerRepo.Count(ctx); err != nil {
		return entity.AdminDashboard{}, storeError(err)
	}
	if dashboard.QuoteCount, err = u.quotes.Count(ctx); err != nil {
		return entity.AdminDashboard{}, err
	}
	if dashboard.ActiveEmployees, err = u.employees.CountActive(ctx); err != nil {
		return entity.AdminDashboard{}, err
	}
	if dashboard.NewQuotes, err = u.quotes.NewQuoteCount(); err != nil {
		return entity.AdminDashboard{}, err
	}

	// An admin that has no resolvable identity yet simply has nothing unread.
	dashboard.UnreadMessages, err = u.chat.UnreadCount(ctx, viewer)
	if err != nil && !errors.Is(err, ErrUnresolvedRecipient) {
		return entity.AdminDashboard{}, err
	}

	return dashboard, nil
}

func (u *dashboardUsecase) Customer(ctx context.Context, viewer *entity.TokenClaims) (entity.CustomerDashboard, error) {
	if !viewer.IsCustomer() {
		return entity.CustomerDashboard{}, ErrForbidden
	}

	customer, err := u.customerRepo.Get(ctx, viewer.UserId)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return entity.CustomerDashboard{}, notFoundError(err)
		}
		return entity.CustomerDashboard{}, storeError(err)
	}

	unread, err := u.chat.UnreadCount(ctx, viewer)
	if err != nil {
		return entity.CustomerDashboard{}, err
	}

	return entity.CustomerDashboard{Customer: customer, UnreadMessages: unread}, nil
}
