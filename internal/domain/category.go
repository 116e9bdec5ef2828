package domain

import "github.com/google/uuid"

// GoalCategory groups goals within one board. UserID is the creator;
// category edits are restricted to the creator regardless of board role.
type GoalCategory struct {
	BaseModel
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index:idx_goal_categories_board_id" json:"board_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_goal_categories_user_id" json:"user_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	IsDeleted bool      `gorm:"not null;default:false;index:idx_goal_categories_is_deleted" json:"is_deleted"`
	Board     Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
	Goals     []Goal    `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"goals,omitempty"`
}

// TableName specifies the table name for GoalCategory
func (GoalCategory) TableName() string {
	return "goal_categories"
}
