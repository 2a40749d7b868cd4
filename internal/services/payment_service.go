package services

import (
	"fmt"

	"closetloop/internal/domain"
	"closetloop/internal/repos"

	"github.com/google/uuid"
)

// PaymentService records gateway outcomes. The gateway itself is a
// black box; no settlement or fraud logic lives here.
type PaymentService struct {
	Payments *repos.PaymentRepo
	Orders   *repos.OrderRepo
}

func NewPaymentService(payments *repos.PaymentRepo, orders *repos.OrderRepo) *PaymentService {
	return &PaymentService{Payments: payments, Orders: orders}
}

func (s *PaymentService) Record(callerID, orderID string, amount float64, method string) (*domain.Payment, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if method == "" {
		return nil, fmt.Errorf("%w: payment method is required", domain.ErrValidation)
	}
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != callerID {
		return nil, fmt.Errorf("%w: order %s belongs to %s", domain.ErrAuthorization, orderID, o.UserID)
	}

	p := &domain.Payment{
		ID:      uuid.NewString(),
		OrderID: orderID,
		UserID:  callerID,
		Amount:  amount,
		Method:  method,
		Status:  "RECORDED",
	}
	if err := s.Payments.Insert(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) History(userID string) ([]domain.Payment, error) {
	return s.Payments.ListByUser(userID)
}
