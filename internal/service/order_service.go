package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/i18n"
	"github.com/templatehub/storefront/internal/logger"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/queue"
	"github.com/templatehub/storefront/internal/repository"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务（结算试算、下单、确认支付）
type OrderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	coupons       *CouponService
	ledger        *CouponLedgerService
	queueClient   *queue.Client
	currency      string
	expireMinutes int
	now           func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	coupons *CouponService,
	ledger *CouponLedgerService,
	queueClient *queue.Client,
	currency string,
	expireMinutes int,
) *OrderService {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = constants.SiteCurrencyDefault
	}
	if expireMinutes <= 0 {
		expireMinutes = constants.OrderPaymentExpireMinutesDefault
	}
	return &OrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		coupons:       coupons,
		ledger:        ledger,
		queueClient:   queueClient,
		currency:      currency,
		expireMinutes: expireMinutes,
		now:           time.Now,
	}
}

// CheckoutItem 下单商品
type CheckoutItem struct {
	ProductSlug string
	Quantity    int
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	CustomerEmail string
	Items         []CheckoutItem
	CouponCode    string
	AutoCoupon    bool
	Locale        string
}

// OrderPreview 结算试算结果
type OrderPreview struct {
	Currency       string             `json:"currency"`
	Items          []models.OrderItem `json:"items"`
	SubtotalAmount models.Money       `json:"subtotal_amount"`
	DiscountAmount models.Money       `json:"discount_amount"`
	TotalAmount    models.Money       `json:"total_amount"`
	Coupon         *DiscountResult    `json:"coupon,omitempty"`
}

type checkoutResult struct {
	cart     *Cart
	items    []models.OrderItem
	discount *DiscountResult
}

// Preview 结算试算，不落库
func (s *OrderService) Preview(input CheckoutInput) (*OrderPreview, error) {
	result, err := s.buildCheckout(input)
	if err != nil {
		return nil, err
	}
	return s.toPreview(result), nil
}

// Create 创建待支付订单
func (s *OrderService) Create(input CheckoutInput) (*models.Order, error) {
	email, err := validateEmail(input.CustomerEmail)
	if err != nil {
		if strings.TrimSpace(input.CustomerEmail) == "" {
			return nil, ErrOrderEmailRequired
		}
		return nil, err
	}
	input.CustomerEmail = email

	result, err := s.buildCheckout(input)
	if err != nil {
		return nil, err
	}
	preview := s.toPreview(result)

	now := s.now()
	expiresAt := now.Add(time.Duration(s.expireMinutes) * time.Minute)
	order := &models.Order{
		OrderNo:        generateOrderNo(now),
		CustomerEmail:  email,
		Status:         constants.OrderStatusPendingPayment,
		Currency:       s.currency,
		SubtotalAmount: preview.SubtotalAmount,
		DiscountAmount: preview.DiscountAmount,
		TotalAmount:    preview.TotalAmount,
		Locale:         i18n.NormalizeLocale(input.Locale),
		ExpiresAt:      &expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if result.discount != nil {
		couponID := result.discount.Coupon.ID
		order.CouponID = &couponID
		order.CouponCode = result.discount.Code
		order.FreeShipping = result.discount.FreeShipping
	}

	if err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, result.items)
	}); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	order.Items = result.items

	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{OrderID: order.ID}, expiresAt.Sub(now)); err != nil {
		logger.Warnw("order_enqueue_timeout_cancel_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"customer_email", order.CustomerEmail,
		"coupon_code", order.CouponCode,
		"total_amount", order.TotalAmount.String(),
	)
	return order, nil
}

// MarkPaid 确认支付，每个订单只会核销一次优惠券
// 核销被拒绝（已达上限、已失效）时放弃优惠，订单按原价支付成功。
func (s *OrderService) MarkPaid(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, errors.Wrap(err, "load order")
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return nil, ErrOrderStatusInvalid
	}

	var usage *models.CouponUsage
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		now := s.now()
		affected, err := orderRepo.TransitionStatus(order.ID, constants.OrderStatusPendingPayment, constants.OrderStatusPaid, map[string]interface{}{
			"paid_at":    now,
			"updated_at": now,
		})
		if err != nil {
			return errors.Wrap(err, "transition order status")
		}
		if affected == 0 {
			return ErrOrderStatusInvalid
		}
		if order.CouponID == nil {
			return nil
		}

		redeemed, err := s.ledger.RedeemInTx(tx, RedeemInput{
			CouponID:       *order.CouponID,
			CustomerEmail:  order.CustomerEmail,
			DiscountAmount: order.DiscountAmount,
			OrderID:        order.ID,
		})
		if err == nil {
			usage = redeemed
			return nil
		}
		if !IsCouponRejection(err) {
			return err
		}
		logger.Warnw("order_coupon_dropped",
			"order_no", order.OrderNo,
			"coupon_code", order.CouponCode,
			"reason", redemptionResult(err),
		)
		return orderRepo.UpdateFields(order.ID, map[string]interface{}{
			"coupon_id":       nil,
			"coupon_code":     "",
			"free_shipping":   false,
			"discount_amount": models.NewMoneyFromDecimal(decimal.Zero),
			"total_amount":    order.SubtotalAmount,
		})
	})
	if err != nil {
		return nil, err
	}

	paid, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "reload order")
	}
	if paid == nil {
		return nil, ErrOrderNotFound
	}
	if usage != nil {
		s.enqueueCouponRedeemed(paid, usage)
	}
	logger.Infow("order_paid",
		"order_no", paid.OrderNo,
		"coupon_code", paid.CouponCode,
		"total_amount", paid.TotalAmount.String(),
	)
	return paid, nil
}

// CancelExpiredOrder 超时未支付订单取消
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, errors.Wrap(err, "load order")
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingPayment || order.ExpiresAt == nil {
		return order, nil
	}
	now := s.now()
	if order.ExpiresAt.After(now) {
		return order, nil
	}
	affected, err := s.orderRepo.TransitionStatus(order.ID, constants.OrderStatusPendingPayment, constants.OrderStatusCanceled, map[string]interface{}{
		"updated_at": now,
	})
	if err != nil {
		return nil, errors.Wrap(err, "cancel order")
	}
	if affected > 0 {
		order.Status = constants.OrderStatusCanceled
		logger.Infow("order_timeout_canceled", "order_no", order.OrderNo)
	}
	return order, nil
}

// CancelExpiredOrders 批量取消已过期的待支付订单，返回取消数量
func (s *OrderService) CancelExpiredOrders(limit int) (int, error) {
	ids, err := s.orderRepo.ListExpiredPendingIDs(s.now(), limit)
	if err != nil {
		return 0, errors.Wrap(err, "list expired orders")
	}
	canceled := 0
	for _, id := range ids {
		order, err := s.CancelExpiredOrder(id)
		if err != nil {
			return canceled, err
		}
		if order != nil && order.Status == constants.OrderStatusCanceled {
			canceled++
		}
	}
	return canceled, nil
}

// GetForAdmin 管理端订单详情
func (s *OrderService) GetForAdmin(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForAdmin 管理端订单列表
func (s *OrderService) ListForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

func (s *OrderService) buildCheckout(input CheckoutInput) (*checkoutResult, error) {
	merged, err := mergeCheckoutItems(input.Items)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(merged))
	for _, item := range merged {
		slugs = append(slugs, item.ProductSlug)
	}
	products, err := s.productRepo.ListBySlugs(slugs)
	if err != nil {
		return nil, errors.Wrap(err, "load products")
	}
	bySlug := make(map[string]models.Product, len(products))
	for _, product := range products {
		bySlug[product.Slug] = product
	}

	items := make([]models.OrderItem, 0, len(merged))
	lines := make([]CartLine, 0, len(merged))
	for _, item := range merged {
		product, ok := bySlug[item.ProductSlug]
		if !ok {
			return nil, ErrProductNotFound
		}
		if !product.IsActive {
			return nil, ErrProductNotAvailable
		}
		lineTotal := models.NewMoneyFromDecimal(product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, models.OrderItem{
			ProductSlug: product.Slug,
			Title:       product.Title,
			Category:    product.Category,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			TotalPrice:  lineTotal,
		})
		lines = append(lines, CartLine{
			ProductSlug: product.Slug,
			Title:       product.Title,
			Category:    product.Category,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal,
		})
	}
	cart := NewCart(lines)

	result := &checkoutResult{cart: cart, items: items}
	code := strings.TrimSpace(input.CouponCode)
	switch {
	case code != "":
		discount, err := s.coupons.ApplyCoupon(ApplyCouponInput{Code: code, CustomerEmail: input.CustomerEmail, Cart: cart})
		if err != nil {
			return nil, err
		}
		result.discount = discount
	case input.AutoCoupon:
		discount, err := s.coupons.AutoApply(input.CustomerEmail, cart)
		if err != nil {
			return nil, err
		}
		result.discount = discount
	}
	return result, nil
}

func (s *OrderService) toPreview(result *checkoutResult) *OrderPreview {
	preview := &OrderPreview{
		Currency:       s.currency,
		Items:          result.items,
		SubtotalAmount: result.cart.Subtotal,
		DiscountAmount: models.NewMoneyFromDecimal(decimal.Zero),
		TotalAmount:    result.cart.Subtotal,
		Coupon:         result.discount,
	}
	if result.discount != nil {
		preview.DiscountAmount = result.discount.DiscountAmount
		preview.TotalAmount = result.discount.Total
	}
	return preview
}

func (s *OrderService) enqueueCouponRedeemed(order *models.Order, usage *models.CouponUsage) {
	payload := queue.CouponRedeemedPayload{
		UsageID:        usage.ID,
		OrderNo:        order.OrderNo,
		CouponCode:     usage.CouponCode,
		CustomerEmail:  usage.CustomerEmail,
		DiscountAmount: usage.DiscountAmount.String(),
		Currency:       order.Currency,
		Locale:         order.Locale,
	}
	if err := s.queueClient.EnqueueCouponRedeemed(payload); err != nil {
		logger.Warnw("order_enqueue_coupon_redeemed_failed",
			"order_no", order.OrderNo,
			"usage_id", usage.ID,
			"error", err,
		)
	}
}

// mergeCheckoutItems 合并重复商品并校验数量
func mergeCheckoutItems(items []CheckoutItem) ([]CheckoutItem, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrderItem
	}
	merged := make([]CheckoutItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		slug := normalizeSlug(item.ProductSlug)
		if slug == "" || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		if pos, ok := index[slug]; ok {
			merged[pos].Quantity += item.Quantity
			if merged[pos].Quantity > constants.OrderMaxItemQuantity {
				return nil, ErrInvalidOrderItem
			}
			continue
		}
		if item.Quantity > constants.OrderMaxItemQuantity {
			return nil, ErrInvalidOrderItem
		}
		index[slug] = len(merged)
		merged = append(merged, CheckoutItem{ProductSlug: slug, Quantity: item.Quantity})
	}
	return merged, nil
}

func generateOrderNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TS%s%s", now.Format("20060102150405"), suffix)
}
