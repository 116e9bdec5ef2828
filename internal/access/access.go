// Package access implements the authorization core as a single pure
// decision table. Services assemble an ownership/liveness snapshot of the
// target entity by walking the board -> category -> goal -> comment chain,
// then consult Authorize before touching any transaction. The package
// performs no I/O.
package access

import (
	"github.com/google/uuid"

	"goal-tracker-api/internal/domain"
)

// Action is the kind of operation being authorized.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionManageParticipants covers mutation of a board's participant list.
	ActionManageParticipants Action = "manage_participants"
)

// Reason explains a denial. Every Deny decision carries one; they are
// surfaced to the boundary layer as structured permission errors.
type Reason string

const (
	ReasonUnauthenticated   Reason = "user is not authenticated"
	ReasonNotParticipant    Reason = "user is not a participant of the board"
	ReasonInsufficientRole  Reason = "participant role is insufficient"
	ReasonNotCreator        Reason = "user is not the creator"
	ReasonNotAuthor         Reason = "user is not the author"
	ReasonBoardDeleted      Reason = "board is deleted"
	ReasonCategoryDeleted   Reason = "category is deleted"
	ReasonGoalArchived      Reason = "goal is archived"
	ReasonUnsupportedAction Reason = "action is not supported for this entity"
)

// LivenessReason reports whether r describes a logically removed target
// rather than a lack of authority. The boundary layer maps liveness
// denials to not-found (or validation failures on create), never to 403.
func LivenessReason(r Reason) bool {
	switch r {
	case ReasonBoardDeleted, ReasonCategoryDeleted, ReasonGoalArchived:
		return true
	}
	return false
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision carrying the given reason.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Target identifies the entity an action is evaluated against, carrying
// the minimal snapshot of the entity graph the rules need.
type Target interface {
	target()
}

// BoardTarget is the snapshot for board actions. For ActionCreate the
// zero value is used: board creation is open to any authenticated user.
type BoardTarget struct {
	Deleted bool
}

// CategoryTarget is the snapshot for category actions. For ActionCreate,
// CreatorID and Deleted describe the category being created (creator is
// the requester, Deleted false) and BoardDeleted the target board.
type CategoryTarget struct {
	CreatorID    uuid.UUID
	Deleted      bool
	BoardDeleted bool
}

// GoalTarget is the snapshot for goal actions. For ActionCreate,
// AuthorID is irrelevant and the Category* fields describe the target
// category the goal is to be created in.
type GoalTarget struct {
	AuthorID          uuid.UUID
	Archived          bool
	CategoryCreatorID uuid.UUID
	CategoryDeleted   bool
	BoardDeleted      bool
}

// CommentTarget is the snapshot for comment actions. Comments on archived
// goals remain readable; only creation is blocked by an archived goal.
type CommentTarget struct {
	AuthorID     uuid.UUID
	GoalArchived bool
}

func (BoardTarget) target()    {}
func (CategoryTarget) target() {}
func (GoalTarget) target()     {}
func (CommentTarget) target()  {}

// Request is one authorization question: may UserID perform Action on Target,
// holding Role on the target's owning board? Role is nil when the user is not
// a participant. UserID uuid.Nil means unauthenticated.
type Request struct {
	UserID uuid.UUID
	Role   *domain.Role
	Action Action
	Target Target
}

// Authorize evaluates the decision table. Rules are checked in order and the
// first match wins; unknown (entity, action) pairs are denied, never allowed
// by fallthrough.
func Authorize(req Request) Decision {
	if req.UserID == uuid.Nil {
		return Deny(ReasonUnauthenticated)
	}

	switch t := req.Target.(type) {
	case BoardTarget:
		return authorizeBoard(req, t)
	case CategoryTarget:
		return authorizeCategory(req, t)
	case GoalTarget:
		return authorizeGoal(req, t)
	case CommentTarget:
		return authorizeComment(req, t)
	}
	return Deny(ReasonUnsupportedAction)
}

func authorizeBoard(req Request, t BoardTarget) Decision {
	if req.Action == ActionCreate {
		return Allow()
	}
	if t.Deleted {
		return Deny(ReasonBoardDeleted)
	}
	if req.Role == nil {
		return Deny(ReasonNotParticipant)
	}
	switch req.Action {
	case ActionRead:
		return Allow()
	case ActionUpdate:
		return requireRole(*req.Role, domain.RoleWriter)
	case ActionDelete, ActionManageParticipants:
		return requireRole(*req.Role, domain.RoleOwner)
	}
	return Deny(ReasonUnsupportedAction)
}

func authorizeCategory(req Request, t CategoryTarget) Decision {
	if t.BoardDeleted {
		return Deny(ReasonBoardDeleted)
	}
	if req.Action != ActionCreate && t.Deleted {
		return Deny(ReasonCategoryDeleted)
	}
	if req.Role == nil {
		return Deny(ReasonNotParticipant)
	}
	switch req.Action {
	case ActionCreate:
		return requireRole(*req.Role, domain.RoleWriter)
	case ActionRead:
		return Allow()
	case ActionUpdate:
		// Deliberately narrower than delete: only the creator edits a
		// category, a board writer who did not create it may not.
		if req.UserID != t.CreatorID {
			return Deny(ReasonNotCreator)
		}
		return Allow()
	case ActionDelete:
		if req.UserID == t.CreatorID {
			return Allow()
		}
		return requireRole(*req.Role, domain.RoleWriter)
	}
	return Deny(ReasonUnsupportedAction)
}

func authorizeGoal(req Request, t GoalTarget) Decision {
	if req.Role == nil {
		return Deny(ReasonNotParticipant)
	}
	switch req.Action {
	case ActionCreate:
		if t.BoardDeleted {
			return Deny(ReasonBoardDeleted)
		}
		if t.CategoryDeleted {
			return Deny(ReasonCategoryDeleted)
		}
		if req.UserID != t.CategoryCreatorID {
			return Deny(ReasonNotCreator)
		}
		return requireRole(*req.Role, domain.RoleWriter)
	case ActionRead:
		if t.Archived {
			return Deny(ReasonGoalArchived)
		}
		return Allow()
	case ActionUpdate, ActionDelete:
		if t.Archived {
			return Deny(ReasonGoalArchived)
		}
		// Authorship gates goal mutation, not board role: a writer who is
		// not the author is denied, the author alone may edit or archive.
		if req.UserID != t.AuthorID {
			return Deny(ReasonNotAuthor)
		}
		return Allow()
	}
	return Deny(ReasonUnsupportedAction)
}

func authorizeComment(req Request, t CommentTarget) Decision {
	if req.Role == nil {
		return Deny(ReasonNotParticipant)
	}
	switch req.Action {
	case ActionCreate:
		if t.GoalArchived {
			return Deny(ReasonGoalArchived)
		}
		return Allow()
	case ActionRead:
		return Allow()
	case ActionUpdate, ActionDelete:
		if req.UserID != t.AuthorID {
			return Deny(ReasonNotAuthor)
		}
		return Allow()
	}
	return Deny(ReasonUnsupportedAction)
}

func requireRole(role, required domain.Role) Decision {
	if role.AtLeast(required) {
		return Allow()
	}
	return Deny(ReasonInsufficientRole)
}
