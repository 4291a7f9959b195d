package command

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/events"
	"github.com/skinory/skinory-api/internal/models"
)

// UserStore is the identity lookup the routine core depends on.
type UserStore interface {
	GetByID(id string) (*models.User, error)
}

// ProductStore is the catalog lookup the routine core depends on.
type ProductStore interface {
	GetByID(id string) (*models.Product, error)
}

// RoutineStore persists routine entries. The backing store must enforce the
// (user_id, product_id, period) unique key; the in-request duplicate check
// here is only a fast-path error.
type RoutineStore interface {
	FindEntry(userID, productID string, period models.Period) (*models.RoutineEntry, error)
	ListViews(userID string, period models.Period) ([]models.RoutineView, error)
	Insert(entry *models.RoutineEntry) error
	UpdateApplied(userID, productID string, applied bool) (int64, error)
	DeleteAllForPeriod(userID string, period models.Period) error
}

// Publisher submits events to a named stream. Fire-and-forget at-least-once;
// the core never constructs its own transport.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// RoutineViewCache invalidates cached routine listings and tracks deletion
// counters.
type RoutineViewCache interface {
	InvalidateRoutineViews(ctx context.Context, userID string, period models.Period)
	InvalidateAllRoutineViews(ctx context.Context, userID string)
	IncrDeletionCount(ctx context.Context, userID string)
}

// RoutineCommandService owns the routine lifecycle: assignment with
// compatibility and duplicate checks, applied-status updates, and bulk
// deletion with its publish-before-delete ordering.
type RoutineCommandService struct {
	users     UserStore
	products  ProductStore
	routines  RoutineStore
	views     RoutineViewCache
	publisher Publisher
}

func NewRoutineCommandService(
	users UserStore,
	products ProductStore,
	routines RoutineStore,
	views RoutineViewCache,
	publisher Publisher,
) *RoutineCommandService {
	return &RoutineCommandService{
		users:     users,
		products:  products,
		routines:  routines,
		views:     views,
		publisher: publisher,
	}
}

// validateCompatibility decides whether a (user, product, category) triple
// may become a routine entry. Check order is fixed for deterministic error
// reporting: existence, then skin type, then category. Returns the validated
// product so callers avoid a second catalog lookup. No side effects.
func (s *RoutineCommandService) validateCompatibility(userID, productID, category string) (*models.Product, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if user.SkinType != product.SkinType {
		return nil, &models.SkinTypeMismatchError{
			ProductSkinType: product.SkinType,
			UserSkinType:    user.SkinType,
		}
	}
	if product.Category != category {
		return nil, &models.CategoryMismatchError{Category: category}
	}
	return product, nil
}

// AddRoutine assigns one product to one period of a user's routine. The
// duplicate check runs strictly after compatibility validation so mismatch
// errors take precedence over duplicate errors.
func (s *RoutineCommandService) AddRoutine(cmd cqrs.AddRoutineCommand) (*models.Product, error) {
	if cmd.UserID == "" || cmd.ProductID == "" || cmd.Category == "" || !cmd.Period.Valid() {
		return nil, models.ErrInvalidRequest
	}

	product, err := s.validateCompatibility(cmd.UserID, cmd.ProductID, cmd.Category)
	if err != nil {
		return nil, err
	}

	existing, err := s.routines.FindEntry(cmd.UserID, cmd.ProductID, cmd.Period)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrDuplicateEntry
	}

	entry := &models.RoutineEntry{
		UserID:    cmd.UserID,
		ProductID: product.ID,
		Category:  product.Category,
		Period:    cmd.Period,
		Applied:   false,
		CreatedAt: time.Now().UTC(),
	}
	// Insert maps the unique-key violation to ErrDuplicateEntry, covering
	// the race where two identical requests both pass FindEntry.
	if err := s.routines.Insert(entry); err != nil {
		return nil, err
	}

	s.views.InvalidateRoutineViews(context.Background(), cmd.UserID, cmd.Period)
	return product, nil
}

// UpdateApplied flips the applied flag. The match is on user and product
// only, across both periods. Idempotent: re-applying the same value touches
// the same rows and succeeds.
func (s *RoutineCommandService) UpdateApplied(cmd cqrs.UpdateAppliedCommand) error {
	if cmd.UserID == "" || cmd.ProductID == "" {
		return models.ErrInvalidRequest
	}

	rows, err := s.routines.UpdateApplied(cmd.UserID, cmd.ProductID, cmd.Applied)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrRoutineNotFound
	}

	s.views.InvalidateAllRoutineViews(context.Background(), cmd.UserID)
	return nil
}

// DeleteRoutines removes every entry a user has for one period, announcing
// the removal first. The event is published before any row is deleted: a
// crash after publish may yield a duplicate notification downstream, but a
// crash before publish never silently deletes data.
func (s *RoutineCommandService) DeleteRoutines(cmd cqrs.DeleteRoutinesCommand) error {
	if cmd.UserID == "" || !cmd.Period.Valid() {
		return models.ErrInvalidRequest
	}

	if _, err := s.users.GetByID(cmd.UserID); err != nil {
		return err
	}

	views, err := s.routines.ListViews(cmd.UserID, cmd.Period)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		return models.ErrNoRoutines
	}

	action := events.RoutineDayDeleted
	if cmd.Period == models.PeriodNight {
		action = events.RoutineNightDeleted
	}
	deleted := make([]events.DeletedRoutine, len(views))
	for i, v := range views {
		deleted[i] = events.DeletedRoutine{
			ProductName: v.ProductName,
			Category:    v.Category,
		}
	}

	ctx := context.Background()
	if err := s.publisher.Publish(ctx, events.RoutineDeletedStream, action, events.RoutineDeletedEvent{
		UserID:   cmd.UserID,
		Action:   action,
		Routines: deleted,
	}); err != nil {
		log.Printf("Failed to publish %s event for user %s: %v", action, cmd.UserID, err)
		return fmt.Errorf("failed to publish deletion event: %w", err)
	}

	if err := s.routines.DeleteAllForPeriod(cmd.UserID, cmd.Period); err != nil {
		log.Printf("Failed to delete %s routines for user %s after publish: %v", cmd.Period, cmd.UserID, err)
		return err
	}

	s.views.InvalidateRoutineViews(ctx, cmd.UserID, cmd.Period)
	return nil
}

// HandleDeletionEvent is the stream subscriber handler. It audits every
// deletion notification and keeps a per-user counter current. At-least-once
// delivery means duplicates are possible; tolerable for a counter.
func (s *RoutineCommandService) HandleDeletionEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.RoutineDayDeleted && event.Type != events.RoutineNightDeleted {
		return nil
	}
	dataBytes, _ := json.Marshal(event.Data)
	var data events.RoutineDeletedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal %s event: %w", event.Type, err)
	}
	log.Printf("User %s removed %d routine entries (%s)", data.UserID, len(data.Routines), data.Action)
	s.views.IncrDeletionCount(ctx, data.UserID)
	return nil
}
