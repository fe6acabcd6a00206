package usecase

import (
	"context"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/internal/engine"

	"go.uber.org/zap"
)

type PriceService interface {
	// GetPrices returns nil when no price table has been configured yet.
	GetPrices(ctx context.Context) (*response.PriceResponse, error)
	ReplacePrices(ctx context.Context, req *request.PriceRequest) (*response.PriceResponse, error)
}

type priceService struct {
	repo repository.PriceRepository
	now  func() time.Time
	log  *zap.Logger
}

func NewPriceService(repo repository.PriceRepository, now func() time.Time, log *zap.Logger) PriceService {
	if now == nil {
		now = time.Now
	}
	return &priceService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "price")),
	}
}

func (s *priceService) GetPrices(ctx context.Context) (*response.PriceResponse, error) {
	prices, err := s.repo.Find(ctx)
	if err != nil {
		return nil, engine.Storage("get prices", err)
	}
	if prices == nil {
		return nil, nil
	}
	resp := response.PricesToResponse(toPrices(prices))
	return &resp, nil
}

// ReplacePrices stores the new table as is; amounts are not range-checked.
func (s *priceService) ReplacePrices(ctx context.Context, req *request.PriceRequest) (*response.PriceResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Replace prices validation failed", zap.Error(err))
		return nil, err
	}

	var (
		table entity.PriceTable
		err   error
	)
	if table.Base, err = parseAmount("base", req.Base); err != nil {
		return nil, err
	}
	if table.PremiumSurcharge, err = parseAmount("premium_surcharge", req.PremiumSurcharge); err != nil {
		return nil, err
	}
	if table.ThreeDSurcharge, err = parseAmount("three_d_surcharge", req.ThreeDSurcharge); err != nil {
		return nil, err
	}
	if table.ReducedBase, err = parseAmount("reduced_base", req.ReducedBase); err != nil {
		return nil, err
	}
	table.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, &table); err != nil {
		return nil, engine.Storage("replace prices", err)
	}
	s.log.Info("Prices replaced")

	// answer with what bookings will actually be priced with
	return s.GetPrices(ctx)
}
