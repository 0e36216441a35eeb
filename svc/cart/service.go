package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceSource resolves the current unit price for a variant at a
// location, so AddItem can snapshot it onto the new Line.
type PriceSource interface {
	UnitPrice(ctx context.Context, variantID uuid.UUID, locationID string) (decimal.Decimal, error)
}

// Service implements cart mutation against a Repository, retrying once on
// an optimistic-concurrency conflict - the same pattern as incrementing a
// row's version and re-reading before giving up.
type Service struct {
	repo   Repository
	prices PriceSource
}

// NewService builds a Service.
func NewService(repo Repository, prices PriceSource) *Service {
	return &Service{repo: repo, prices: prices}
}

// GetOrCreateForUser returns the open cart for userID, creating an empty
// one if none exists yet.
func (s *Service) GetOrCreateForUser(ctx context.Context, tenantID uuid.UUID, userID string) (*Cart, error) {
	return s.getOrCreate(ctx, tenantID, OwnerUser, userID)
}

// GetOrCreateForSession returns the open cart for an anonymous sessionID.
func (s *Service) GetOrCreateForSession(ctx context.Context, tenantID uuid.UUID, sessionID string) (*Cart, error) {
	return s.getOrCreate(ctx, tenantID, OwnerSession, sessionID)
}

func (s *Service) getOrCreate(ctx context.Context, tenantID uuid.UUID, ownerType OwnerType, ownerID string) (*Cart, error) {
	c, err := s.repo.FindByOwner(ctx, ownerType, ownerID)
	if err == nil {
		return c, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	c = &Cart{
		TenantID:  tenantID,
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Currency:  "usd",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem appends quantity units of variantID at locationID to cart,
// merging into an existing line for the same variant/location if one
// exists. The unit price is snapshotted at call time via PriceSource.
func (s *Service) AddItem(ctx context.Context, c *Cart, variantID uuid.UUID, locationID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	price, err := s.prices.UnitPrice(ctx, variantID, locationID)
	if err != nil {
		return nil, err
	}

	next := cloneCart(c)
	if idx := next.lineIndex(variantID, locationID); idx >= 0 {
		next.Lines[idx].Quantity += quantity
	} else {
		next.Lines = append(next.Lines, Line{
			ID:         uuid.New(),
			VariantID:  variantID,
			LocationID: locationID,
			Quantity:   quantity,
			UnitPrice:  price,
			AddedAt:    time.Now().UTC(),
		})
	}

	return s.save(ctx, next)
}

// UpdateQty sets the quantity of an existing line. A quantity of 0 is
// equivalent to RemoveItem.
func (s *Service) UpdateQty(ctx context.Context, c *Cart, variantID uuid.UUID, locationID string, quantity int) (*Cart, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, c, variantID, locationID)
	}

	next := cloneCart(c)
	idx := next.lineIndex(variantID, locationID)
	if idx < 0 {
		return nil, ErrLineNotFound
	}
	next.Lines[idx].Quantity = quantity

	return s.save(ctx, next)
}

// RemoveItem drops the line for variantID/locationID from cart.
func (s *Service) RemoveItem(ctx context.Context, c *Cart, variantID uuid.UUID, locationID string) (*Cart, error) {
	next := cloneCart(c)
	idx := next.lineIndex(variantID, locationID)
	if idx < 0 {
		return nil, ErrLineNotFound
	}
	next.Lines = append(next.Lines[:idx], next.Lines[idx+1:]...)

	return s.save(ctx, next)
}

// Clear empties cart of every line.
func (s *Service) Clear(ctx context.Context, c *Cart) (*Cart, error) {
	next := cloneCart(c)
	next.Lines = nil
	return s.save(ctx, next)
}

// Subtotal returns the cart's current line-item subtotal.
func (s *Service) Subtotal(c *Cart) decimal.Decimal {
	return c.Subtotal()
}

func (s *Service) save(ctx context.Context, c *Cart) (*Cart, error) {
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func cloneCart(c *Cart) *Cart {
	clone := *c
	clone.Lines = append([]Line(nil), c.Lines...)
	return &clone
}
