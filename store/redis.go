package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "pokerdirector:tournament:"

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore keeps every record in a hash at prefix+id.
func NewRedisStore(client *redis.Client, prefix string) Store {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func (s *redisStore) key(id string) string {
	return s.prefix + id
}

func (s *redisStore) Create(ctx context.Context, rec Record) (*Record, error) {
	rec = prepareCreate(rec)
	key := s.key(rec.ID)

	created, err := s.client.HSetNX(ctx, key, "id", rec.ID).Result()
	if err != nil {
		return nil, fmt.Errorf("store: create %s: %w", rec.ID, err)
	}
	if !created {
		return nil, ErrRecordExists
	}

	if err := s.client.HSet(ctx, key, recordToHash(rec)).Err(); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", rec.ID, err)
	}
	return &rec, nil
}

func (s *redisStore) Update(ctx context.Context, id string, patch RecordPatch) error {
	key := s.key(id)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("store: update %s: %w", id, err)
	}
	if exists == 0 {
		return ErrRecordNotFound
	}

	fields := patchToHash(patch)
	fields["updated_at"] = strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("store: update %s: %w", id, err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*Record, error) {
	values, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", id, err)
	}
	if len(values) == 0 {
		return nil, ErrRecordNotFound
	}

	rec := hashToRecord(values)
	return &rec, nil
}

func recordToHash(rec Record) map[string]interface{} {
	return map[string]interface{}{
		"id":               rec.ID,
		"owner_id":         rec.OwnerID,
		"name":             rec.Name,
		"settings":         rec.Settings,
		"levels":           rec.Levels,
		"payout_structure": rec.PayoutStructure,
		"players":          rec.Players,
		"state":            rec.State,
		"created_at":       strconv.FormatInt(rec.CreatedAt, 10),
		"updated_at":       strconv.FormatInt(rec.UpdatedAt, 10),
	}
}

func patchToHash(patch RecordPatch) map[string]interface{} {
	fields := make(map[string]interface{})
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Settings != nil {
		fields["settings"] = *patch.Settings
	}
	if patch.Levels != nil {
		fields["levels"] = *patch.Levels
	}
	if patch.PayoutStructure != nil {
		fields["payout_structure"] = *patch.PayoutStructure
	}
	if patch.Players != nil {
		fields["players"] = *patch.Players
	}
	if patch.State != nil {
		fields["state"] = *patch.State
	}
	return fields
}

func hashToRecord(values map[string]string) Record {
	createdAt, _ := strconv.ParseInt(values["created_at"], 10, 64)
	updatedAt, _ := strconv.ParseInt(values["updated_at"], 10, 64)
	return Record{
		ID:              values["id"],
		OwnerID:         values["owner_id"],
		Name:            values["name"],
		Settings:        values["settings"],
		Levels:          values["levels"],
		PayoutStructure: values["payout_structure"],
		Players:         values["players"],
		State:           values["state"],
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}
