package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepoPkg "glowtheory/database/repository/booking"
	catalogRepoPkg "glowtheory/database/repository/catalog"
	"glowtheory/models"
	"glowtheory/services/availability"
	"glowtheory/services/sms"
	"glowtheory/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// CheckoutService owns cart sessions: assembling pending appointments,
// rejecting cross-item conflicts, and driving sequential submission once
// the customer's phone is verified.
type CheckoutService interface {
	// CreateCart opens an empty cart session.
	CreateCart(ctx context.Context) (*models.Cart, error)
	// GetCart retrieves a cart session.
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	// AddItem validates an appointment against server availability and the
	// cart's own items, then stores it.
	AddItem(ctx context.Context, cartID string, item models.CartItem) (*models.Cart, error)
	// RemoveItem drops one item from the cart.
	RemoveItem(ctx context.Context, cartID, itemID string) (*models.Cart, error)
	// Submit books every cart item sequentially, in cart order.
	Submit(ctx context.Context, cartID string, customer models.Customer) (*models.CheckoutResult, error)
}

// DefaultCheckoutService is the production implementation.
type DefaultCheckoutService struct {
	Cache        *redis.Client
	Bookings     bookingRepoPkg.BookingRepository
	Catalog      catalogRepoPkg.CatalogRepository
	Availability availability.AvailabilityService
	Notifier     *sms.ConfirmationNotifier
}

// CreateCart opens an empty cart session.
func (s *DefaultCheckoutService) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart retrieves a cart session from the cache.
func (s *DefaultCheckoutService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	data, err := s.Cache.Get(ctx, utils.CartCachePrefix+cartID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to load cart session: %w", err)
	}
	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to parse cart session: %w", err)
	}
	return &cart, nil
}

// AddItem validates and stores one pending appointment. The server-side
// availability check and the cart-conflict check share the same overlap
// predicate, so "free" means the same thing on both sides.
func (s *DefaultCheckoutService) AddItem(ctx context.Context, cartID string, item models.CartItem) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	svc, err := s.Catalog.GetServiceByID(item.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, fmt.Errorf("service %s is not offered", item.ServiceID)
	}
	if item.StylistID == "" {
		return nil, fmt.Errorf("a stylist preference is required")
	}
	if _, err := time.Parse("2006-01-02", item.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q", item.Date)
	}

	item.ID = uuid.NewString()
	item.Duration = svc.DurationMinutes
	item.Price = svc.Price

	if item.StylistID != models.NoPreference {
		stylist, err := s.Catalog.GetStylistByID(item.StylistID)
		if err != nil {
			return nil, fmt.Errorf("failed to load stylist: %w", err)
		}
		if stylist == nil || !stylist.Offers(item.ServiceID) {
			return nil, fmt.Errorf("stylist %s does not offer this service", item.StylistID)
		}
	}

	// Server-side availability first, then the cart's own blocked set.
	free, err := s.slotFree(ctx, item)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotUnavailable
	}
	for _, existing := range cart.Items {
		if existing.Date == item.Date &&
			utils.Overlaps(item.Start, item.Duration, existing.Start, existing.Duration) {
			return nil, ErrCartConflict
		}
	}

	cart.Items = append(cart.Items, item)
	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops one item from the cart.
func (s *DefaultCheckoutService) RemoveItem(ctx context.Context, cartID, itemID string) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	found := false
	for _, item := range cart.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, fmt.Errorf("cart item %s not found", itemID)
	}
	cart.Items = kept

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Submit books every cart item one at a time, in cart order. There is no
// distributed transaction: when item k fails, items 1..k-1 stay committed
// and items k+1..n are never attempted. On full success the cart is
// discarded and the confirmation message goes out best effort.
func (s *DefaultCheckoutService) Submit(ctx context.Context, cartID string, customer models.Customer) (*models.CheckoutResult, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if customer.Name == "" || customer.Phone == "" {
		return nil, fmt.Errorf("customer name and phone are required")
	}
	customer.Phone = utils.NormalizePhone(customer.Phone)

	logger := utils.GetLogger()
	created := make([]models.Booking, 0, len(cart.Items))
	for _, item := range cart.Items {
		booking := models.Booking{
			ID:        uuid.NewString(),
			Customer:  customer,
			ServiceID: item.ServiceID,
			StylistID: item.StylistID,
			Date:      item.Date,
			Start:     item.Start,
			Duration:  item.Duration,
			Price:     item.Price,
		}
		if err := s.Bookings.Create(&booking); err != nil {
			return nil, &PartialBookingError{
				Created:      created,
				FailedItemID: item.ID,
				Err:          err,
			}
		}
		created = append(created, booking)
	}

	totalPrice := cart.TotalPrice()

	// The cart is spent; a cleanup failure is not worth failing the booking.
	if err := s.Cache.Del(ctx, utils.CartCachePrefix+cartID).Err(); err != nil {
		logger.Sugar().Warnf("failed to discard cart %s: %v", cartID, err)
	}

	s.sendConfirmation(ctx, customer.Phone, created, totalPrice)

	return &models.CheckoutResult{
		Bookings:   created,
		TotalPrice: totalPrice,
	}, nil
}

// sendConfirmation is fire-and-forget: a failed confirmation message never
// invalidates a completed booking.
func (s *DefaultCheckoutService) sendConfirmation(ctx context.Context, phone string, bookings []models.Booking, totalPrice float64) {
	if s.Notifier == nil {
		return
	}

	summaries := make([]models.AppointmentSummary, 0, len(bookings))
	for _, b := range bookings {
		name := b.ServiceID
		if svc, err := s.Catalog.GetServiceByID(b.ServiceID); err == nil && svc != nil {
			name = svc.Name
		}
		summaries = append(summaries, models.AppointmentSummary{
			ServiceName: name,
			Date:        b.Date,
			Start:       b.Start,
			Price:       b.Price,
		})
	}

	if err := s.Notifier.Notify(ctx, phone, summaries, totalPrice); err != nil {
		utils.GetLogger().Sugar().Warnf("confirmation message failed for %s: %v", phone, err)
	}
}

// slotFree runs the server-side availability check for one item.
func (s *DefaultCheckoutService) slotFree(ctx context.Context, item models.CartItem) (bool, error) {
	var (
		slots []models.TimeSlot
		err   error
	)
	if item.StylistID == models.NoPreference {
		slots, err = s.Availability.ServiceSlots(ctx, item.ServiceID, item.Date)
	} else {
		slots, err = s.Availability.StylistSlots(ctx, item.StylistID, item.Date, item.Duration)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	want := utils.MinutesToClock(item.Start)
	for _, slot := range slots {
		if slot.Time == want {
			return slot.Available, nil
		}
	}
	return false, nil
}

func (s *DefaultCheckoutService) saveCart(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart session: %w", err)
	}
	if err := s.Cache.Set(ctx, utils.CartCachePrefix+cart.ID, data, utils.CartSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart session: %w", err)
	}
	return nil
}
