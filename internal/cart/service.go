package cart

// Service holds the checkout-facing cart rules. Validation is pure: the
// order engine decides when to read and when to mutate.
type Service interface {
	ValidateForCheckout(c *Cart, lines []Line) error
}

type service struct{}

func NewService() Service {
	return &service{}
}

// ValidateForCheckout checks that a cart can be converted into an order:
// it must be open, owned by a customer, and non-empty.
func (s *service) ValidateForCheckout(c *Cart, lines []Line) error {
	if c.Status != StatusOpen {
		return ErrCartNotOpen
	}
	if c.CustomerID == nil {
		return ErrCartNoCustomer
	}
	if len(lines) == 0 {
		return ErrCartEmpty
	}
	return nil
}
