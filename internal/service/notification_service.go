package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"finchpay/internal/models"
	"finchpay/internal/repository"

	"gorm.io/gorm"
)

// NotificationService persists merchant-facing notification decisions.
type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify records one notification for the ledger event eventID. A second
// call for the same event hits the unique index and is treated as already
// delivered.
func (s *NotificationService) Notify(ctx context.Context, eventID, ownerID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(ctx, &models.Notification{
		EventID: eventID,
		OwnerID: ownerID,
		Type:    notifType,
		Title:   title,
		Body:    body,
		Data:    dataJSON,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (s *NotificationService) NotifyWalletCredited(ctx context.Context, eventID, ownerID uint, amount int64, txRef string) error {
	return s.Notify(ctx, eventID, ownerID, "WALLET_CREDITED", "Wallet credited",
		fmt.Sprintf("Your wallet was credited with %d.", amount),
		map[string]interface{}{"amount": amount, "tx_ref": txRef})
}
