package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aigerim-zh/kshop/internal/modules/notification/domain"
	"github.com/aigerim-zh/kshop/internal/modules/notification/infrastructure/websocket"
)

// AdminLister supplies the admin user ids to fan order events out to.
type AdminLister interface {
	ListAdminIDs(ctx context.Context) ([]uuid.UUID, error)
}

type NotificationService struct {
	repo   domain.NotificationRepository
	hub    *websocket.Hub
	admins AdminLister
}

func NewNotificationService(repo domain.NotificationRepository, hub *websocket.Hub, admins AdminLister) *NotificationService {
	return &NotificationService{repo: repo, hub: hub, admins: admins}
}

// Create stores a notification and pushes it to the user's open websocket
// connections.
func (s *NotificationService) Create(ctx context.Context, userID uuid.UUID, title, message string, typ domain.NotificationType) error {
	notification := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if msgBytes, err := json.Marshal(notification); err == nil {
		s.hub.SendToUser(userID, msgBytes)
	}
	return nil
}

// NotifyAdmins writes the event to every admin. Order checkout and payment
// events land here.
func (s *NotificationService) NotifyAdmins(ctx context.Context, title, message string) error {
	adminIDs, err := s.admins.ListAdminIDs(ctx)
	if err != nil {
		return err
	}
	for _, adminID := range adminIDs {
		if err := s.Create(ctx, adminID, title, message, domain.NotificationTypeInfo); err != nil {
			return err
		}
	}
	return nil
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}
