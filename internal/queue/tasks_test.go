package queue

import (
	"encoding/json"
	"testing"

	"github.com/templatehub/storefront/internal/config"
)

func TestNewCouponRedeemedTask(t *testing.T) {
	task, err := NewCouponRedeemedTask(CouponRedeemedPayload{OrderNo: "TPL1", CouponCode: "SAVE20", DiscountAmount: "15.00"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskCouponRedeemed {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	var payload CouponRedeemedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.CouponCode != "SAVE20" || payload.DiscountAmount != "15.00" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueCouponRedeemed(CouponRedeemedPayload{OrderNo: "TPL1"}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueOrderTimeoutCancel(OrderTimeoutCancelPayload{OrderID: 1}, 0); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{})
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency: %d", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 || cfg.Queues[CriticalQueue] != 2 {
		t.Fatalf("unexpected queues: %+v", cfg.Queues)
	}
}
