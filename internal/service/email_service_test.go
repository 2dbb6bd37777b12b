package service

import (
	"strings"
	"testing"

	"github.com/templatehub/storefront/internal/config"
	"github.com/templatehub/storefront/internal/i18n"
	"github.com/templatehub/storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCouponReceiptContent(t *testing.T) {
	input := CouponReceiptInput{
		OrderNo:        "TS-1001",
		CouponCode:     "SAVE20",
		DiscountAmount: models.MustMoney("15"),
		Currency:       "USD",
	}

	tests := []struct {
		name        string
		locale      string
		wantSubject []string
		wantBody    []string
	}{
		{
			name:        "english",
			locale:      i18n.LocaleEnUS,
			wantSubject: []string{"TS-1001"},
			wantBody:    []string{"SAVE20", "15.00 USD", "TS-1001"},
		},
		{
			name:        "chinese",
			locale:      i18n.LocaleZhCN,
			wantSubject: []string{"TS-1001"},
			wantBody:    []string{"优惠码 SAVE20", "15.00 USD", "订单 TS-1001"},
		},
		{
			name:        "unknown_locale_falls_back",
			locale:      "fr-FR",
			wantSubject: []string{"TS-1001"},
			wantBody:    []string{"SAVE20", "15.00 USD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := buildCouponReceiptContent(input, tt.locale)
			for _, want := range tt.wantSubject {
				assert.Contains(t, subject, want)
			}
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
			assert.NotContains(t, body, "%!")
		})
	}
}

func TestSendCouponReceiptRequiresConfig(t *testing.T) {
	input := CouponReceiptInput{OrderNo: "TS-1", CouponCode: "A", DiscountAmount: models.MustMoney("1"), Currency: "USD"}

	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	require.ErrorIs(t, disabled.SendCouponReceipt("a@example.com", input, ""), ErrEmailServiceDisabled)

	missingHost := NewEmailService(&config.EmailConfig{Enabled: true, Port: 587, From: "shop@example.com"})
	require.ErrorIs(t, missingHost.SendCouponReceipt("a@example.com", input, ""), ErrEmailServiceNotConfig)

	configured := NewEmailService(&config.EmailConfig{Enabled: true, Host: "smtp.example.com", Port: 587, From: "shop@example.com"})
	require.ErrorIs(t, configured.SendCouponReceipt("not-an-email", input, ""), ErrCustomerEmailInvalid)
}

func TestBuildEmailMessageHeaders(t *testing.T) {
	from := buildFromAddress("shop@example.com", "Template Store")
	msg := buildEmailMessage(from, "a@example.com", "Receipt", "body")

	assert.True(t, strings.HasPrefix(msg, "From: "))
	assert.Contains(t, msg, "<shop@example.com>")
	assert.Contains(t, msg, "To: a@example.com\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nbody"))

	assert.Equal(t, "shop@example.com", buildFromAddress("shop@example.com", " "))
}
