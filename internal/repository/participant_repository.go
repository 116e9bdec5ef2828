package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal-tracker-api/internal/domain"
)

// ParticipantRepository defines the interface for board participant data access
type ParticipantRepository interface {
	Create(ctx context.Context, participant *domain.BoardParticipant) error
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardParticipant, error)
	FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardParticipant, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// participantRepositoryImpl is the GORM implementation of ParticipantRepository
type participantRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new instance of ParticipantRepository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepositoryImpl{db: db}
}

// Create creates a new board participant
func (r *participantRepositoryImpl) Create(ctx context.Context, participant *domain.BoardParticipant) error {
	return conn(ctx, r.db).Create(participant).Error
}

// FindByBoardID finds all participants of a board
func (r *participantRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardParticipant, error) {
	var participants []*domain.BoardParticipant
	if err := conn(ctx, r.db).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// FindByBoardAndUser finds the participant row binding a user to a board
func (r *participantRepositoryImpl) FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardParticipant, error) {
	var participant domain.BoardParticipant
	if err := conn(ctx, r.db).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// UpdateRole updates the role of an existing participant row in place
func (r *participantRepositoryImpl) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	return conn(ctx, r.db).
		Model(&domain.BoardParticipant{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// Delete removes a participant row
func (r *participantRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).
		Where("id = ?", id).
		Delete(&domain.BoardParticipant{}).Error
}
