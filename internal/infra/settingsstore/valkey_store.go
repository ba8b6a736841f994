package settingsstore

import (
	"context"
	"encoding/json"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/stylecast/internal/domain/settings"
)

const defaultKey = "stylecast:settings:ads"

// ValkeyStore persists the ad configuration as one JSON value.
type ValkeyStore struct {
	client valkey.Client
	key    string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, key string) *ValkeyStore {
	if key == "" {
		key = defaultKey
	}
	return &ValkeyStore{client: client, key: key}
}

func (s *ValkeyStore) Load(ctx context.Context) (settings.AdConfig, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return settings.AdConfig{}, false, nil
		}
		return settings.AdConfig{}, false, err
	}
	var cfg settings.AdConfig
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		return settings.AdConfig{}, false, err
	}
	return cfg, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, cfg settings.AdConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, s.client.B().Set().Key(s.key).Value(string(payload)).Build()).Error()
}

var _ settings.Store = (*ValkeyStore)(nil)
