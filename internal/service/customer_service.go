package service

import (
	"net/mail"
	"strings"

	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/repository"

	"github.com/go-faster/errors"
)

// CustomerService 客户画像服务
type CustomerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

// Profile 获取客户画像，邮箱为空时返回 nil 表示匿名
func (s *CustomerService) Profile(email string) (*CustomerProfile, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, nil
	}
	paid, err := s.orderRepo.CountPaidByEmail(normalized)
	if err != nil {
		return nil, errors.Wrap(err, "count paid orders")
	}
	customer, err := s.customerRepo.GetByEmail(normalized)
	if err != nil {
		return nil, errors.Wrap(err, "load customer")
	}
	profile := &CustomerProfile{Email: normalized, PaidOrders: paid}
	if customer != nil {
		profile.IsVIP = customer.IsVIP
	}
	return profile, nil
}

// SetVIP 设置客户 VIP 标记
func (s *CustomerService) SetVIP(email string, isVIP bool) (*models.Customer, error) {
	normalized, err := validateEmail(email)
	if err != nil {
		return nil, err
	}
	return s.customerRepo.SetVIP(normalized, isVIP)
}

// List 客户列表
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.customerRepo.List(filter)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) (string, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return "", ErrCustomerEmailInvalid
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", ErrCustomerEmailInvalid
	}
	return normalized, nil
}
