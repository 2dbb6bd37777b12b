package queue

import (
	"encoding/json"

	"github.com/templatehub/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCouponRedeemed 优惠券核销通知任务
	TaskCouponRedeemed = constants.TaskCouponRedeemed
	// TaskOrderTimeoutCancel 超时取消任务
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
)

// CouponRedeemedPayload 优惠券核销任务载荷
type CouponRedeemedPayload struct {
	UsageID        uint   `json:"usage_id"`
	OrderNo        string `json:"order_no"`
	CouponCode     string `json:"coupon_code"`
	CustomerEmail  string `json:"customer_email"`
	DiscountAmount string `json:"discount_amount"`
	Currency       string `json:"currency"`
	Locale         string `json:"locale"`
}

// OrderTimeoutCancelPayload 超时取消任务载荷
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// NewCouponRedeemedTask 创建优惠券核销通知任务
func NewCouponRedeemedTask(payload CouponRedeemedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCouponRedeemed, body), nil
}

// NewOrderTimeoutCancelTask 创建超时取消任务
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}
