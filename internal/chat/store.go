package chat

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Muskan6505/Local-helpHub/internal/models"
)

// Store is the gorm-backed MessageStore.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, m *models.Message) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (s *Store) MarkSeen(ctx context.Context, receiverID, requestID uint) ([]uint, error) {
	unseen := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("receiver_id = ? AND request_id = ? AND seen = ?", receiverID, requestID, false)

	var senders []uint
	if err := unseen.Distinct("sender_id").Pluck("sender_id", &senders).Error; err != nil {
		return nil, fmt.Errorf("failed to list unseen senders: %w", err)
	}
	if len(senders) == 0 {
		return nil, nil
	}

	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("receiver_id = ? AND request_id = ? AND seen = ?", receiverID, requestID, false).
		Update("seen", true).Error
	if err != nil {
		return nil, fmt.Errorf("failed to mark messages seen: %w", err)
	}
	return senders, nil
}
