package domain

import "github.com/google/uuid"

// Board is the top-level container scoping a goal-tracking workspace
// and its access-control list. Boards are never hard-deleted; IsDeleted
// marks the whole subtree as logically removed.
type Board struct {
	BaseModel
	Title        string             `gorm:"type:varchar(255);not null" json:"title"`
	IsDeleted    bool               `gorm:"not null;default:false;index:idx_boards_is_deleted" json:"is_deleted"`
	Participants []BoardParticipant `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	Categories   []GoalCategory     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// Role represents the authority level of a board participant.
// Roles are totally ordered: owner > writer > reader.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleWriter Role = "writer"
	RoleReader Role = "reader"
)

var roleRank = map[Role]int{
	RoleReader: 1,
	RoleWriter: 2,
	RoleOwner:  3,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the authority of required.
// Unknown roles never satisfy any requirement.
func (r Role) AtLeast(required Role) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}

// BoardParticipant binds a user to a board with a role.
// A board has at most one participant row per user.
type BoardParticipant struct {
	BaseModel
	BoardID uuid.UUID `gorm:"type:uuid;not null;index:idx_participants_board_id;uniqueIndex:uq_participants_board_user" json:"board_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_participants_user_id;uniqueIndex:uq_participants_board_user" json:"user_id"`
	Role    Role      `gorm:"type:varchar(20);not null" json:"role"`
	Board   Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
}

// TableName specifies the table name for BoardParticipant
func (BoardParticipant) TableName() string {
	return "board_participants"
}
