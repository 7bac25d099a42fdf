package preferences

import (
	"context"
	"encoding/json"
)

func get[T any](ctx context.Context, s *Store, userID string, c Category) (T, error) {
	var v T
	raw, err := s.Get(ctx, userID, c)
	if err != nil {
		return v, err
	}
	err = json.Unmarshal(raw, &v)
	return v, err
}

func (s *Store) Appearance(ctx context.Context, userID string) (Appearance, error) {
	return get[Appearance](ctx, s, userID, CategoryAppearance)
}

func (s *Store) Notifications(ctx context.Context, userID string) (Notifications, error) {
	return get[Notifications](ctx, s, userID, CategoryNotifications)
}

func (s *Store) Profile(ctx context.Context, userID string) (Profile, error) {
	return get[Profile](ctx, s, userID, CategoryProfile)
}

func (s *Store) Budget(ctx context.Context, userID string) (Budget, error) {
	return get[Budget](ctx, s, userID, CategoryBudget)
}

func (s *Store) SetAppearance(ctx context.Context, userID string, p AppearancePatch) error {
	return s.Set(ctx, userID, CategoryAppearance, p)
}

func (s *Store) SetNotifications(ctx context.Context, userID string, p NotificationsPatch) error {
	return s.Set(ctx, userID, CategoryNotifications, p)
}

// SetProfile stages profile edits locally. A currency change also rewrites
// the budget preferences.
func (s *Store) SetProfile(ctx context.Context, userID string, p ProfilePatch) error {
	return s.Set(ctx, userID, CategoryProfile, p)
}
