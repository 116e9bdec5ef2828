package domain

import "github.com/google/uuid"

// GoalComment represents a comment on a goal. UserID is the author;
// only the author may mutate a comment, any board participant may read it.
type GoalComment struct {
	BaseModel
	GoalID uuid.UUID `gorm:"type:uuid;not null;index:idx_goal_comments_goal_id" json:"goal_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_goal_comments_user_id" json:"user_id"`
	Text   string    `gorm:"type:text;not null" json:"text"`
	Goal   Goal      `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"goal,omitempty"`
}

// TableName specifies the table name for GoalComment
func (GoalComment) TableName() string {
	return "goal_comments"
}
