package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"elitepainters/internal/config"
	"elitepainters/internal/entity"
	"elitepainters/internal/metrics"
	"elitepainters/internal/repository"

	"github.com/rs/zerolog"
)

const (
	newQuotesKey  = "quotes:new"
	notifyTimeout = 30 * time.Second
)

// QuoteNotifier tells the business about a new quote out of band (email).
type QuoteNotifier interface {
	NotifyNewQuote(ctx context.Context, quote entity.Quote) error
}

// CounterCache holds the admin's "new quotes" badge.
type CounterCache interface {
	Increment(key string, delta int64) (int64, error)
	Int64(key string) (int64, error)
	Delete(key string)
}

type QuoteUsecase interface {
	Create(ctx context.Context, req entity.QuoteRequest) (entity.Quote, error)
	Index(ctx context.Context) ([]entity.Quote, error)
	Delete(ctx context.Context, quoteId string) error
	Count(ctx context.Context) (int64, error)
	NewQuoteCount() (int64, error)
	ResetNewQuotes()
}

type quoteUsecase struct {
	quoteRepo repository.QuoteRepository
	rates     config.PriceRates
	badge     CounterCache
	publisher RoomPublisher
	notifier  QuoteNotifier
	logger    zerolog.Logger
}

func NewQuoteUsecase(
	quoteRepo repository.QuoteRepository,
	rates config.PriceRates,
	badge CounterCache,
	publisher RoomPublisher,
	notifier QuoteNotifier,
	logger zerolog.Logger,
) QuoteUsecase {
	return &quoteUsecase{
		quoteRepo: quoteRepo,
		rates:     rates,
		badge:     badge,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
	}
}

// EstimatePrice is the linear estimate in NZD, rounded to cents.
func EstimatePrice(req entity.QuoteRequest, rates config.PriceRates) float64 {
	total := req.Area*rates.PerSqm +
		float64(req.Windows)*rates.PerWindow +
		float64(req.Doors)*rates.PerDoor +
		float64(req.Frames)*rates.PerFrame +
		float64(req.Features)*rates.PerFeature
	return math.Round(total*100) / 100
}

func (u *quoteUsecase) Create(ctx context.Context, req entity.QuoteRequest) (entity.Quote, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return entity.Quote{}, validationError("name is required")
	}
	if req.Area < 0 || math.IsNaN(req.Area) || math.IsInf(req.Area, 0) ||
		req.Windows < 0 || req.Doors < 0 || req.Frames < 0 || req.Features < 0 {
		return entity.Quote{}, validationError("measurements must not be negative")
	}

	quote, err := u.quoteRepo.Create(ctx, entity.Quote{
		Name:           req.Name,
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Address:        strings.TrimSpace(req.Address),
		PaintType:      strings.TrimSpace(req.PaintType),
		Area:           req.Area,
		Windows:        req.Windows,
		Doors:          req.Doors,
		Frames:         req.Frames,
		Features:       req.Features,
		Message:        strings.TrimSpace(req.Message),
		EstimatedPrice: EstimatePrice(req, u.rates),
	})
	if err != nil {
		return entity.Quote{}, storeError(err)
	}
	metrics.QuotesSubmitted.Inc()

	pending, err := u.badge.Increment(newQuotesKey, 1)
	if err != nil {
		u.logger.Error().Err(err).Msg("increment new quote badge")
	}
	u.announce(quote, pending)

	go u.notify(context.WithoutCancel(ctx), quote)

	return quote, nil
}

func (u *quoteUsecase) announce(quote entity.Quote, pending int64) {
	payload, err := json.Marshal(entity.Event{
		Event: entity.EventQuoteNew,
		Data:  entity.NewQuoteNotice{QuoteId: quote.Id, NewQuotes: pending},
	})
	if err != nil {
		u.logger.Error().Err(err).Msg("marshal quote event")
		return
	}
	u.publisher.PublishToRoom(entity.AdminsChannel, payload)
	metrics.ChatPublishes.WithLabelValues("admins").Inc()
}

func (u *quoteUsecase) notify(ctx context.Context, quote entity.Quote) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := u.notifier.NotifyNewQuote(ctx, quote); err != nil {
		u.logger.Warn().Err(err).Str("quote_id", quote.Id).Msg("new quote email not sent")
	}
}

func (u *quoteUsecase) Index(ctx context.Context) ([]entity.Quote, error) {
	quotes, err := u.quoteRepo.Index(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return quotes, nil
}

func (u *quoteUsecase) Delete(ctx context.Context, quoteId string) error {
	if err := u.quoteRepo.Delete(ctx, quoteId); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return notFoundError(err)
		}
		return storeError(err)
	}
	return nil
}

func (u *quoteUsecase) Count(ctx context.Context) (int64, error) {
	count, err := u.quoteRepo.Count(ctx)
	if err != nil {
		return 0, storeError(err)
	}
	return count, nil
}

func (u *quoteUsecase) NewQuoteCount() (int64, error) {
	return u.badge.Int64(newQuotesKey)
}

func (u *quoteUsecase) ResetNewQuotes() {
	u.badge.Delete(newQuotesKey)
}
