package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsubv2 "cloud.google.com/go/pubsub/v2"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/google/uuid"
)

// DefaultRecentLimit bounds the dashboard timeline.
const DefaultRecentLimit = 20

type activityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	Recent(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

// EventPublisher mirrors recorded entries to a message topic.
type EventPublisher interface {
	Publish(ctx context.Context, msg *pubsubv2.Message) *pubsubv2.PublishResult
}

// EntryDTO is the wire shape of a timeline entry.
type EntryDTO struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"created_at"`
}

// Service records and reads the activity timeline. Record never returns an
// error; the timeline must not break the flow that feeds it.
type Service interface {
	Record(ctx context.Context, kind enums.ActivityType, description, actor string)
	Recent(ctx context.Context, limit int) ([]EntryDTO, error)
}

type service struct {
	repo   activityRepository
	mirror EventPublisher
	logg   *logger.Logger
}

// NewService builds an activity service. mirror may be nil; entries are then
// only written to the database.
func NewService(repo activityRepository, mirror EventPublisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, mirror: mirror, logg: logg}, nil
}

// Record writes a timeline entry best-effort. Failures are logged at debug
// level and swallowed.
func (s *service) Record(ctx context.Context, kind enums.ActivityType, description, actor string) {
	entry := &models.ActivityLog{
		ID:          uuid.New(),
		Type:        kind,
		Description: description,
		Actor:       actor,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logg.Debug(ctx, fmt.Sprintf("activity entry dropped: %v", err))
		return
	}
	s.publish(ctx, entry)
}

func (s *service) publish(ctx context.Context, entry *models.ActivityLog) {
	if s.mirror == nil {
		return
	}
	payload, err := json.Marshal(EntryDTO{
		ID:          entry.ID,
		Type:        entry.Type.String(),
		Description: entry.Description,
		Actor:       entry.Actor,
		CreatedAt:   entry.CreatedAt,
	})
	if err != nil {
		s.logg.Debug(ctx, fmt.Sprintf("activity event not encoded: %v", err))
		return
	}

	res := s.mirror.Publish(ctx, &pubsubv2.Message{
		Data:       payload,
		Attributes: map[string]string{"type": entry.Type.String()},
	})
	go func() {
		if _, err := res.Get(context.WithoutCancel(ctx)); err != nil {
			s.logg.Debug(ctx, fmt.Sprintf("activity event not published: %v", err))
		}
	}()
}

// Recent returns the newest entries for the dashboard timeline.
func (s *service) Recent(ctx context.Context, limit int) ([]EntryDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultRecentLimit
	}
	rows, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activity")
	}
	out := make([]EntryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, EntryDTO{
			ID:          row.ID,
			Type:        row.Type.String(),
			Description: row.Description,
			Actor:       row.Actor,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}
