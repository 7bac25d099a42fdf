// Package preferences stores per-user settings under namespaced keys
// "{category}_{userID}" in the durable store.
//
// Every write is a shallow merge onto the current value. Reads fall back to
// the legacy flat key "{category}" and then to the category defaults; the
// legacy form is never written, so data migrates as users edit it. Without
// a user id, settings live in process memory only.
package preferences

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophsession/internal/client/cookies"
	"github.com/dmitrijs2005/gophsession/internal/client/storage"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/logging"
)

// ErrUnknownCategory is returned for a category outside Categories.
var ErrUnknownCategory = errors.New("unknown preference category")

type Store struct {
	store      storage.Store
	jar        cookies.Jar
	logger     logging.Logger
	production bool

	mu        sync.Mutex
	ephemeral map[Category]string
}

type Option func(*Store)

// WithProduction marks settings cookies Secure.
func WithProduction(production bool) Option {
	return func(s *Store) {
		s.production = production
	}
}

func New(store storage.Store, jar cookies.Jar, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		store:     store,
		jar:       jar,
		logger:    logger.With("module", "preferences"),
		ephemeral: make(map[Category]string),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Key is the namespaced storage key of a category for a user.
func Key(userID string, c Category) string {
	return string(c) + "_" + userID
}

// SettingsCookieName is the cookie mirroring a category for a user.
func SettingsCookieName(userID string, c Category) string {
	return string(c) + "Settings_" + userID
}

// Get returns the category value for userID as a JSON object, falling back
// to the legacy flat key and then to defaults.
func (s *Store) Get(ctx context.Context, userID string, c Category) (json.RawMessage, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	v, err := s.load(ctx, s.store, userID, c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (s *Store) lookup(ctx context.Context, repo storage.Repository, userID string, c Category) (raw string, source string, err error) {
	if userID == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		if v, ok := s.ephemeral[c]; ok {
			return v, "memory", nil
		}
		return "", "", nil
	}

	key := Key(userID, c)
	v, ok, err := repo.Get(ctx, key)
	if err != nil {
		return "", "", common.Persistence("read "+key, err)
	}
	if ok {
		return v, key, nil
	}

	v, ok, err = repo.Get(ctx, string(c))
	if err != nil {
		return "", "", common.Persistence("read "+string(c), err)
	}
	if ok {
		return v, string(c), nil
	}
	return "", "", nil
}

// load resolves a category to a validated value. Unreadable or invalid
// stored data is logged and replaced by defaults.
func (s *Store) load(ctx context.Context, repo storage.Repository, userID string, c Category) (settings, error) {
	raw, source, err := s.lookup(ctx, repo, userID, c)
	if err != nil {
		return nil, err
	}

	v := defaults(c)
	if raw == "" {
		return v, nil
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn(ctx, "ignoring unreadable preferences", "key", source, "error", err)
		return defaults(c), nil
	}
	if err := v.validate(); err != nil {
		s.logger.Warn(ctx, "ignoring invalid preferences", "key", source, "error", err)
		return defaults(c), nil
	}
	return v, nil
}

// Set merges patch onto the current value of the category and writes the
// namespaced key. patch must marshal to a JSON object; a null member clears
// an optional field. The merged value is validated before anything is
// written.
func (s *Store) Set(ctx context.Context, userID string, c Category, patch any) error {
	if !c.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	if c == CategoryBudget {
		return common.NewValidationError(string(c), "derived from the profile currency")
	}

	members, err := toObject(patch)
	if err != nil {
		return err
	}

	if userID == "" {
		return s.setEphemeral(ctx, c, members)
	}

	var merged settings
	err = s.store.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		current, err := s.load(ctx, repo, userID, c)
		if err != nil {
			return err
		}
		merged, err = merge(c, current, members)
		if err != nil {
			return err
		}
		if err := write(ctx, repo, Key(userID, c), merged); err != nil {
			return err
		}
		if c == CategoryProfile {
			return syncBudget(ctx, repo, userID, merged.(*Profile))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if c == CategoryAppearance {
		return s.mirrorCookie(ctx, userID, c, merged)
	}
	return nil
}

func (s *Store) setEphemeral(ctx context.Context, c Category, members map[string]json.RawMessage) error {
	current, err := s.load(ctx, s.store, "", c)
	if err != nil {
		return err
	}
	merged, err := merge(c, current, members)
	if err != nil {
		return err
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ephemeral[c] = string(data)

	if c == CategoryProfile {
		b, _ := json.Marshal(budgetFor(merged.(*Profile).Currency))
		s.ephemeral[CategoryBudget] = string(b)
	}
	return nil
}

// syncBudget rewrites budgetPreferences from profile.currency on every
// profile write. It runs in the same transaction as the profile write, so a
// profile resolved from a legacy or unreadable key cannot leave a stale
// budget behind.
func syncBudget(ctx context.Context, repo storage.Repository, userID string, p *Profile) error {
	b := budgetFor(p.Currency)
	return write(ctx, repo, Key(userID, CategoryBudget), &b)
}

func budgetFor(label string) Budget {
	cur, _ := LookupCurrency(label)
	return Budget{Currency: cur.Code, CurrencySymbol: cur.Symbol}
}

func write(ctx context.Context, repo storage.Repository, key string, v settings) error {
	data, err := json.Marshal(v)
	if err != nil {
		return common.Persistence("encode "+key, err)
	}
	if err := repo.Set(ctx, key, string(data)); err != nil {
		return common.Persistence("write "+key, err)
	}
	return nil
}

func (s *Store) mirrorCookie(ctx context.Context, userID string, c Category, v settings) error {
	data, err := json.Marshal(v)
	if err != nil {
		return common.Persistence("encode settings cookie", err)
	}
	cookie := &http.Cookie{
		Name:     SettingsCookieName(userID, c),
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   int(common.SettingsCookieTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   s.production,
	}
	if err := s.jar.SetCookie(ctx, cookie); err != nil {
		return common.Persistence("write settings cookie", err)
	}
	return nil
}

// toObject turns a patch into its JSON object members.
func toObject(patch any) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(patch)
	if err != nil {
		return nil, common.NewValidationError("", "patch is not serializable: "+err.Error())
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil || members == nil {
		return nil, common.NewValidationError("", "patch must be a JSON object")
	}
	return members, nil
}

// merge overlays members onto current and decodes the result strictly, so
// unknown keys and wrong types are rejected.
func merge(c Category, current settings, members map[string]json.RawMessage) (settings, error) {
	base, err := toObject(current)
	if err != nil {
		return nil, err
	}
	for k, v := range members {
		base[k] = v
	}

	data, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}

	merged := zero(c)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(merged); err != nil {
		return nil, common.NewValidationError(string(c), err.Error())
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// PurgeForUser removes every namespaced key of userID, the legacy flat keys
// and the settings cookies. All removals are attempted; it is safe to call
// when nothing is stored.
func (s *Store) PurgeForUser(ctx context.Context, userID string) error {
	if userID == "" {
		s.mu.Lock()
		clear(s.ephemeral)
		s.mu.Unlock()
	}

	var errs []error
	for _, key := range purgeKeys(userID) {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, common.Persistence("delete "+key, err))
		}
	}
	if userID != "" {
		name := SettingsCookieName(userID, CategoryAppearance)
		if err := s.jar.SetCookie(ctx, cookies.Expired(name, "/")); err != nil {
			errs = append(errs, common.Persistence("expire "+name, err))
		}
	}
	return errors.Join(errs...)
}

func purgeKeys(userID string) []string {
	keys := make([]string, 0, 2*len(Categories)+len(legacyKeys))
	if userID != "" {
		for _, c := range Categories {
			keys = append(keys, Key(userID, c))
		}
	}
	keys = append(keys, legacyKeys...)
	for _, c := range Categories {
		if !slices.Contains(keys, string(c)) {
			keys = append(keys, string(c))
		}
	}
	return keys
}

// ClearAll is the maintenance action that removes the preferences of every
// user, plus the legacy keys. Session keys are left alone. Settings cookies
// of other users cannot be enumerated and expire on their own.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	clear(s.ephemeral)
	s.mu.Unlock()

	return s.store.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		for _, key := range purgeKeys("") {
			if err := repo.Delete(ctx, key); err != nil {
				return common.Persistence("delete "+key, err)
			}
		}
		for _, c := range Categories {
			keys, err := repo.Keys(ctx, string(c)+"_")
			if err != nil {
				return common.Persistence("list "+string(c), err)
			}
			for _, key := range keys {
				if err := repo.Delete(ctx, key); err != nil {
					return common.Persistence("delete "+key, err)
				}
			}
		}
		return nil
	})
}

// Export resolves every category for userID.
func (s *Store) Export(ctx context.Context, userID string) (map[Category]json.RawMessage, error) {
	out := make(map[Category]json.RawMessage, len(Categories))
	for _, c := range Categories {
		v, err := s.Get(ctx, userID, c)
		if err != nil {
			return nil, err
		}
		out[c] = v
	}
	return out, nil
}

// UserIDs lists the users that have namespaced preferences stored.
func (s *Store) UserIDs(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, c := range Categories {
		keys, err := s.store.Keys(ctx, string(c)+"_")
		if err != nil {
			return nil, common.Persistence("list "+string(c), err)
		}
		for _, k := range keys {
			seen[strings.TrimPrefix(k, string(c)+"_")] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
