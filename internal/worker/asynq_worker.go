package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/templatehub/storefront/internal/logger"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/provider"
	"github.com/templatehub/storefront/internal/queue"
	"github.com/templatehub/storefront/internal/service"

	"github.com/go-faster/errors"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCouponRedeemed, c.handleCouponRedeemed)
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
}

func (c *Consumer) handleCouponRedeemed(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_coupon_redeemed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CouponRedeemedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_coupon_redeemed_unmarshal_failed", "error", err)
		return errors.Wrap(asynq.SkipRetry, err.Error())
	}
	receiver := strings.TrimSpace(payload.CustomerEmail)
	if receiver == "" || payload.OrderNo == "" {
		logger.Debugw("worker_coupon_redeemed_skip_invalid_payload", "usage_id", payload.UsageID, "order_no", payload.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_coupon_redeemed_skip_email_service_nil", "order_no", payload.OrderNo)
		return nil
	}
	input, err := buildCouponReceiptInput(payload)
	if err != nil {
		logger.Warnw("worker_coupon_redeemed_invalid_amount", "order_no", payload.OrderNo, "amount", payload.DiscountAmount, "error", err)
		return nil
	}

	err = c.EmailService.SendCouponReceipt(receiver, input, payload.Locale)
	switch {
	case err == nil:
		logger.Infow("worker_coupon_receipt_sent", "order_no", payload.OrderNo, "coupon_code", payload.CouponCode)
		return nil
	case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfig):
		logger.Debugw("worker_coupon_receipt_skip_email_disabled", "order_no", payload.OrderNo)
		return nil
	case errors.Is(err, service.ErrCustomerEmailInvalid):
		logger.Debugw("worker_coupon_receipt_skip_invalid_receiver", "order_no", payload.OrderNo)
		return nil
	default:
		logger.Warnw("worker_coupon_receipt_send_failed",
			"order_no", payload.OrderNo,
			"coupon_code", payload.CouponCode,
			"error", err,
		)
		return err
	}
}

func buildCouponReceiptInput(payload queue.CouponRedeemedPayload) (service.CouponReceiptInput, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(payload.DiscountAmount))
	if err != nil {
		return service.CouponReceiptInput{}, err
	}
	return service.CouponReceiptInput{
		OrderNo:        strings.TrimSpace(payload.OrderNo),
		CouponCode:     strings.TrimSpace(payload.CouponCode),
		DiscountAmount: models.NewMoneyFromDecimal(amount),
		Currency:       strings.TrimSpace(payload.Currency),
	}, nil
}

func (c *Consumer) handleOrderTimeoutCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_timeout_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_timeout_cancel_unmarshal_failed", "error", err)
		return errors.Wrap(asynq.SkipRetry, err.Error())
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_timeout_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_timeout_cancel_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if _, err := c.OrderService.CancelExpiredOrder(payload.OrderID); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_order_timeout_cancel_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
