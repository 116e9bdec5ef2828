package access

import (
	"github.com/google/uuid"

	"goal-tracker-api/internal/domain"
)

// ParticipantState is one existing participant row of a board.
type ParticipantState struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Role   domain.Role
}

// DesiredParticipant is one entry of the participant set a board update
// wants to arrive at.
type DesiredParticipant struct {
	UserID uuid.UUID
	Role   domain.Role
}

// RoleChange updates an existing participant row in place, preserving its id.
type RoleChange struct {
	ID     uuid.UUID
	UserID uuid.UUID
	From   domain.Role
	To     domain.Role
}

// ReconcilePlan is the three-way diff moving a board's participant set to a
// desired state: the three lists are disjoint and together touch each
// affected user exactly once. Unchanged participants appear in none of them.
type ReconcilePlan struct {
	Create []DesiredParticipant
	Update []RoleChange
	Delete []ParticipantState
}

// Empty reports whether the plan performs no operations.
func (p ReconcilePlan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// PlanReconcile computes the minimal create/update/delete operations moving
// current to desired. The acting owner is protected: their row is never
// deleted or updated, and any desired entry naming them is ignored, so the
// owner role cannot be reassigned through this path. When desired names the
// same user twice the last entry wins.
//
// The plan is deterministic: deletes and updates follow the order of current,
// creates the order of first appearance in desired.
func PlanReconcile(current []ParticipantState, desired []DesiredParticipant, actingOwner uuid.UUID) ReconcilePlan {
	wanted := make(map[uuid.UUID]domain.Role, len(desired))
	order := make([]uuid.UUID, 0, len(desired))
	for _, d := range desired {
		if d.UserID == actingOwner {
			continue
		}
		if _, seen := wanted[d.UserID]; !seen {
			order = append(order, d.UserID)
		}
		wanted[d.UserID] = d.Role
	}

	var plan ReconcilePlan
	existing := make(map[uuid.UUID]bool, len(current))
	for _, p := range current {
		if p.UserID == actingOwner {
			continue
		}
		existing[p.UserID] = true
		role, ok := wanted[p.UserID]
		if !ok {
			plan.Delete = append(plan.Delete, p)
			continue
		}
		if p.Role != role {
			plan.Update = append(plan.Update, RoleChange{
				ID:     p.ID,
				UserID: p.UserID,
				From:   p.Role,
				To:     role,
			})
		}
	}

	for _, userID := range order {
		if existing[userID] {
			continue
		}
		plan.Create = append(plan.Create, DesiredParticipant{
			UserID: userID,
			Role:   wanted[userID],
		})
	}

	return plan
}
