package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-tracker-api/internal/access"
	"goal-tracker-api/internal/domain"
	"goal-tracker-api/internal/repository"
	"goal-tracker-api/internal/response"
)

// roleCacheTTL bounds staleness of cached participant roles. Reconciliation
// and board deletion invalidate eagerly; the TTL covers everything else.
const roleCacheTTL = 30 * time.Second

// userIDFromContext extracts the authenticated user id the auth middleware
// put on the request context. uuid.Nil means unauthenticated; the access
// table turns that into a deny, so callers pass it through unchecked.
func userIDFromContext(ctx context.Context) uuid.UUID {
	if userID, ok := ctx.Value("user_id").(uuid.UUID); ok {
		return userID
	}
	return uuid.Nil
}

// RoleResolver looks up the role a user holds on a board, nil when the user
// is not a participant. Lookups go through a short-TTL Redis cache when one
// is configured; the resolver degrades to plain repository reads without it.
type RoleResolver struct {
	participantRepo repository.ParticipantRepository
	redis           *redis.Client
	logger          *zap.Logger
}

// NewRoleResolver creates a new RoleResolver. redisClient may be nil.
func NewRoleResolver(participantRepo repository.ParticipantRepository, redisClient *redis.Client, logger *zap.Logger) *RoleResolver {
	return &RoleResolver{
		participantRepo: participantRepo,
		redis:           redisClient,
		logger:          logger,
	}
}

func roleCacheKey(boardID, userID uuid.UUID) string {
	return "goal:role:" + boardID.String() + ":" + userID.String()
}

// cache sentinel for "user is not a participant"
const roleNone = "none"

// Resolve returns the user's role on the board, or nil if not a participant
func (r *RoleResolver) Resolve(ctx context.Context, boardID, userID uuid.UUID) (*domain.Role, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	if r.redis != nil {
		if cached, err := r.redis.Get(ctx, roleCacheKey(boardID, userID)).Result(); err == nil {
			if cached == roleNone {
				return nil, nil
			}
			role := domain.Role(cached)
			if role.Valid() {
				return &role, nil
			}
		}
	}

	participant, err := r.participantRepo.FindByBoardAndUser(ctx, boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.cacheRole(ctx, boardID, userID, roleNone)
			return nil, nil
		}
		return nil, err
	}

	r.cacheRole(ctx, boardID, userID, string(participant.Role))
	role := participant.Role
	return &role, nil
}

func (r *RoleResolver) cacheRole(ctx context.Context, boardID, userID uuid.UUID, value string) {
	if r.redis == nil {
		return
	}
	if err := r.redis.Set(ctx, roleCacheKey(boardID, userID), value, roleCacheTTL).Err(); err != nil {
		r.logger.Debug("Failed to cache participant role",
			zap.String("board_id", boardID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

// Invalidate drops cached roles for the given users on a board. Called after
// reconciliation and board deletion so stale grants do not outlive a change.
func (r *RoleResolver) Invalidate(ctx context.Context, boardID uuid.UUID, userIDs ...uuid.UUID) {
	if r.redis == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, len(userIDs))
	for i, userID := range userIDs {
		keys[i] = roleCacheKey(boardID, userID)
	}
	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		r.logger.Debug("Failed to invalidate role cache",
			zap.String("board_id", boardID.String()),
			zap.Error(err),
		)
	}
}

// denyError maps a denial to the service error surfaced to the boundary.
// Liveness denials become not-found: a soft-deleted target is invisible,
// not forbidden. Everything else keeps the decision's reason.
func denyError(d access.Decision) *response.AppError {
	switch {
	case d.Reason == access.ReasonUnauthenticated:
		return response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	case access.LivenessReason(d.Reason):
		return response.NewAppError(response.ErrCodeNotFound, "Resource not found", string(d.Reason))
	default:
		return response.NewAppError(response.ErrCodeForbidden, "Permission denied: "+string(d.Reason), "")
	}
}

// denyCreateError is denyError for create operations, where a dead parent is
// a validation failure of the referencing field rather than a missing target.
func denyCreateError(field string, d access.Decision) *response.AppError {
	if access.LivenessReason(d.Reason) {
		return response.NewAppError(response.ErrCodeValidation, "Invalid "+field+": "+string(d.Reason), "")
	}
	return denyError(d)
}
