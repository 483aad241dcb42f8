package cart

import (
	"context"
	"strings"

	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront"
)

const MaxLineQuantity = 99

// LineInput adds merchandise to a cart.
type LineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// LineUpdate sets the quantity of an existing line. Zero removes it.
type LineUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Service reads and mutates Storefront API carts. The caller keeps the
// cart ID (in a signed cookie) and passes it in.
type Service struct {
	sf storefront.API
}

func NewService(sf storefront.API) *Service {
	return &Service{sf: sf}
}

// Get returns the cart, or nil when cartID is empty or unknown.
func (s *Service) Get(ctx context.Context, cartID string) (*storefront.Cart, error) {
	if cartID == "" {
		return nil, nil
	}
	var res storefront.CartResult
	if err := s.sf.Query(ctx, storefront.CartQuery, storefront.Vars{"cartId": cartID}, &res, storefront.NoCache()); err != nil {
		return nil, err
	}
	return res.Cart, nil
}

// AddLines adds lines to the cart, creating a new cart when cartID is empty
// or no longer exists.
func (s *Service) AddLines(ctx context.Context, cartID string, lines []LineInput) (*storefront.Cart, error) {
	if err := validateInputs(lines); err != nil {
		return nil, err
	}
	if cartID != "" {
		var res storefront.CartLinesAddResult
		if err := s.sf.Mutate(ctx, storefront.CartLinesAddMutation, storefront.Vars{
			"cartId": cartID,
			"lines":  lines,
		}, &res); err != nil {
			return nil, apperr.Wrap(err)
		}
		p := res.CartLinesAdd
		if p.Cart != nil || len(p.UserErrors) > 0 {
			return payloadCart(p)
		}
	}

	var res storefront.CartCreateResult
	if err := s.sf.Mutate(ctx, storefront.CartCreateMutation, storefront.Vars{
		"input": map[string]any{"lines": lines},
	}, &res); err != nil {
		return nil, apperr.Wrap(err)
	}
	return payloadCart(res.CartCreate)
}

// UpdateLines changes line quantities.
func (s *Service) UpdateLines(ctx context.Context, cartID string, lines []LineUpdate) (*storefront.Cart, error) {
	if cartID == "" {
		return nil, apperr.NotFoundErr("Your cart is empty.")
	}
	for _, l := range lines {
		if l.ID == "" || l.Quantity < 0 || l.Quantity > MaxLineQuantity {
			return nil, apperr.InvalidErr("Invalid quantity.", map[string]string{"quantity": "Must be between 0 and 99."})
		}
	}
	var res storefront.CartLinesUpdateResult
	if err := s.sf.Mutate(ctx, storefront.CartLinesUpdateMutation, storefront.Vars{
		"cartId": cartID,
		"lines":  lines,
	}, &res); err != nil {
		return nil, apperr.Wrap(err)
	}
	return payloadCart(res.CartLinesUpdate)
}

// RemoveLines deletes lines from the cart.
func (s *Service) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*storefront.Cart, error) {
	if cartID == "" {
		return nil, apperr.NotFoundErr("Your cart is empty.")
	}
	if len(lineIDs) == 0 {
		return nil, apperr.InvalidErr("Nothing to remove.", nil)
	}
	var res storefront.CartLinesRemoveResult
	if err := s.sf.Mutate(ctx, storefront.CartLinesRemoveMutation, storefront.Vars{
		"cartId":  cartID,
		"lineIds": lineIDs,
	}, &res); err != nil {
		return nil, apperr.Wrap(err)
	}
	return payloadCart(res.CartLinesRemove)
}

func validateInputs(lines []LineInput) error {
	if len(lines) == 0 {
		return apperr.InvalidErr("Nothing to add.", nil)
	}
	for _, l := range lines {
		if strings.TrimSpace(l.MerchandiseID) == "" {
			return apperr.InvalidErr("Please choose a variant.", map[string]string{"merchandise_id": "Required."})
		}
		if l.Quantity < 1 || l.Quantity > MaxLineQuantity {
			return apperr.InvalidErr("Invalid quantity.", map[string]string{"quantity": "Must be between 1 and 99."})
		}
	}
	return nil
}

func payloadCart(p storefront.CartPayload) (*storefront.Cart, error) {
	if len(p.UserErrors) > 0 {
		fields := make(map[string]string, len(p.UserErrors))
		for _, ue := range p.UserErrors {
			fields[strings.Join(ue.Field, ".")] = ue.Message
		}
		return nil, apperr.InvalidErr(p.UserErrors[0].Message, fields)
	}
	if p.Cart == nil {
		return nil, apperr.Wrap(errCartMissing)
	}
	return p.Cart, nil
}
