package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// couponService implements the CouponUsecase interface.
type couponService struct {
	txManager  repository.TransactionManager
	couponRepo repository.CouponRepository
	orderRepo  repository.OrderRepository
	logger     *slog.Logger
}

// CouponServiceParams holds dependencies for CouponService, injected by Fx.
type CouponServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	CouponRepo repository.CouponRepository
	OrderRepo  repository.OrderRepository
	Logger     *slog.Logger
}

// NewCouponService is the constructor for couponService.
func NewCouponService(params CouponServiceParams) usecase.CouponUsecase {
	return &couponService{
		txManager:  params.TxManager,
		couponRepo: params.CouponRepo,
		orderRepo:  params.OrderRepo,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *couponService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCoupons retrieves all coupons.
func (srv *couponService) ListCoupons(ctx context.Context) ([]*entity.Coupon, error) {
	// Single query operation - use direct repository instance
	coupons, err := srv.couponRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list coupons")
	}

	return coupons, nil
}

// CreateCoupon creates a coupon.
func (srv *couponService) CreateCoupon(ctx context.Context, input usecase.CreateCouponInput) (*entity.Coupon, error) {
	srv.log(ctx).Info("Creating coupon", slog.String("code", input.Code))

	if !input.Condition.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown coupon condition")
	}

	coupon := &entity.Coupon{
		Code:                 input.Code,
		Condition:            input.Condition,
		MinimumPurchaseValue: input.MinimumPurchaseValue,
		DiscountAmount:       input.DiscountAmount,
		UsageLimitPerPerson:  input.UsageLimitPerPerson,
		IsValid:              input.IsValid,
	}
	if err := srv.couponRepo.Create(ctx, coupon); err != nil {
		srv.log(ctx).Error("Failed to create coupon", slog.String("code", input.Code), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create coupon")
	}

	return coupon, nil
}

// UpdateCoupon modifies a coupon.
func (srv *couponService) UpdateCoupon(ctx context.Context, id uuid.UUID, input usecase.CreateCouponInput) (*entity.Coupon, error) {
	srv.log(ctx).Info("Updating coupon", slog.Any("couponID", id))

	if !input.Condition.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown coupon condition")
	}

	coupon, err := srv.couponRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCouponNotFound, "coupon does not exist")
		}

		return nil, errors.Wrap(err, "failed to load coupon")
	}

	coupon.Code = input.Code
	coupon.Condition = input.Condition
	coupon.MinimumPurchaseValue = input.MinimumPurchaseValue
	coupon.DiscountAmount = input.DiscountAmount
	coupon.UsageLimitPerPerson = input.UsageLimitPerPerson
	coupon.IsValid = input.IsValid

	if err := srv.couponRepo.Update(ctx, coupon); err != nil {
		return nil, errors.Wrap(err, "failed to update coupon")
	}

	return coupon, nil
}

// DeleteCoupon removes a coupon.
func (srv *couponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting coupon", slog.Any("couponID", id))

	if err := srv.couponRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return errors.Wrap(domainerrors.ErrCouponNotFound, "coupon does not exist")
		}

		return errors.Wrap(err, "failed to delete coupon")
	}

	return nil
}

// FindApplicableCoupons returns the valid coupons the user can still use.
// First-purchase coupons are excluded for users who have already ordered;
// every included coupon carries its remaining use count.
func (srv *couponService) FindApplicableCoupons(ctx context.Context, userID uuid.UUID) ([]*entity.ApplicableCoupon, error) {
	srv.log(ctx).Debug("Finding applicable coupons", slog.Any("userID", userID))

	coupons, err := srv.couponRepo.ListValid(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list valid coupons")
	}

	orderCount, err := srv.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count user orders")
	}
	isNewUser := orderCount == 0

	applicable := make([]*entity.ApplicableCoupon, 0, len(coupons))
	for _, coupon := range coupons {
		if coupon.Condition == entity.CouponConditionFirstUser && !isNewUser {
			continue
		}

		used, err := srv.couponRepo.CountUsage(ctx, userID, coupon.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count coupon usage")
		}
		if used >= int64(coupon.UsageLimitPerPerson) {
			continue
		}

		applicable = append(applicable, &entity.ApplicableCoupon{
			Coupon:        *coupon,
			RemainingUses: coupon.UsageLimitPerPerson - int(used),
		})
	}

	return applicable, nil
}

// ApplyCoupon validates eligibility against the order amount, irreversibly
// records one usage and returns the discount.
func (srv *couponService) ApplyCoupon(ctx context.Context, userID uuid.UUID, input usecase.ApplyCouponInput) (*usecase.ApplyCouponOutput, error) {
	srv.log(ctx).Info("Applying coupon", slog.Any("userID", userID), slog.String("code", input.Code))

	var output *usecase.ApplyCouponOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		couponRepo := repoFactory.NewCouponRepository()
		orderRepo := repoFactory.NewOrderRepository()

		coupon, err := couponRepo.FindByCode(ctx, input.Code)
		if err != nil {
			if errors.Is(err, repository.ErrCouponNotFound) {
				return errors.Wrap(domainerrors.ErrCouponNotFound, "coupon code does not exist")
			}

			return errors.Wrap(err, "failed to load coupon by code")
		}
		if !coupon.IsValid {
			return errors.Wrap(domainerrors.ErrCouponInvalid, "coupon is not active")
		}

		used, err := couponRepo.CountUsage(ctx, userID, coupon.ID)
		if err != nil {
			return errors.Wrap(err, "failed to count coupon usage")
		}
		if used >= int64(coupon.UsageLimitPerPerson) {
			return errors.Wrap(domainerrors.ErrCouponUsageLimitReached, "per-person usage limit reached")
		}

		switch coupon.Condition {
		case entity.CouponConditionFirstUser:
			orderCount, err := orderRepo.CountByUser(ctx, userID)
			if err != nil {
				return errors.Wrap(err, "failed to count user orders")
			}
			if orderCount > 0 {
				return errors.Wrap(domainerrors.ErrCouponFirstUserOnly, "user has already placed an order")
			}
		case entity.CouponConditionPurchase:
			if input.OrderAmount < coupon.MinimumPurchaseValue {
				return errors.Wrap(domainerrors.ErrCouponMinimumPurchase, "order amount below minimum purchase value")
			}
		}

		usage := &entity.CouponUsage{
			UserID:   userID,
			CouponID: coupon.ID,
		}
		if err := couponRepo.RecordUsage(ctx, usage); err != nil {
			return errors.Wrap(err, "failed to record coupon usage")
		}

		// The order amount is optional; the cap and the final amount only
		// apply when the caller supplied one.
		discount := coupon.DiscountAmount
		var finalAmount float64
		if input.OrderAmount > 0 {
			if discount > input.OrderAmount {
				discount = input.OrderAmount
			}
			finalAmount = input.OrderAmount - discount
		}

		output = &usecase.ApplyCouponOutput{
			Coupon:         coupon,
			DiscountAmount: discount,
			FinalAmount:    finalAmount,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to apply coupon", slog.Any("userID", userID), slog.String("code", input.Code), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute apply-coupon transaction")
	}

	return output, nil
}
