package account

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	fieldDisplayName      = "display_name"
	fieldPasswordHash     = "password_hash"
	fieldType             = "type"
	fieldRefreshTokenHash = "refresh_token_hash"
)

// updateRefreshHashScript writes the refresh-token hash only when the account
// row exists, mirroring the row count an SQL UPDATE would report.
const updateRefreshHashScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "refresh_token_hash", ARGV[1])
return 1
`

var updateRefreshHashLua = redis.NewScript(updateRefreshHashScript)

// RedisStore is a [Store] backed by one Redis hash per account row.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore creates a RedisStore. prefix namespaces all account keys;
// when empty it defaults to "ac".
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ac"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + ":account:" + userID
}

// FindOne fetches the account row for userID, or [ErrNotFound].
func (s *RedisStore) FindOne(ctx context.Context, userID string) (*Record, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	typ, err := TypeOfCode(fields[fieldType])
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", userID, err)
	}

	return &Record{
		UserID:           userID,
		PasswordHash:     fields[fieldPasswordHash],
		DisplayName:      fields[fieldDisplayName],
		Type:             typ,
		RefreshTokenHash: fields[fieldRefreshTokenHash],
	}, nil
}

// UpdateRefreshTokenHash overwrites the stored refresh-token hash for an
// existing account. Returns [ErrNotFound] when the row does not exist.
func (s *RedisStore) UpdateRefreshTokenHash(ctx context.Context, userID, hash string) error {
	updated, err := updateRefreshHashLua.Run(ctx, s.rdb, []string{s.key(userID)}, hash).Int64()
	if err != nil {
		return fmt.Errorf("refresh hash update: %w", err)
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

// Put writes a full account row. Account provisioning is the credential
// store's concern, not the engine's; Put exists so deployments and tests can
// seed the adapter.
func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	if !rec.Type.Storable() {
		return fmt.Errorf("account type %s is not storable", rec.Type)
	}
	return s.rdb.HSet(ctx, s.key(rec.UserID),
		fieldDisplayName, rec.DisplayName,
		fieldPasswordHash, rec.PasswordHash,
		fieldType, rec.Type.Code(),
		fieldRefreshTokenHash, rec.RefreshTokenHash,
	).Err()
}
