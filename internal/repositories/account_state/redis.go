package account_state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/rankwatch/internal/common/clock"
	"github.com/KirkDiggler/rankwatch/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	stateKeyPrefix = "account_state:"
)

// Config holds configuration for the Redis account state repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Clock stamps UpdatedAt on save, defaults to the system clock
	Clock clock.Clock
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis-backed account state repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := cfg.Clock
	if c == nil {
		c = &clock.DefaultClock{}
	}

	return &redisRepository{
		client: cfg.RedisClient,
		clock:  c,
	}, nil
}

// StateKey returns the Redis key for an account. Name and tag are kept verbatim
// so distinct Riot IDs never share a key.
func StateKey(account models.Account) string {
	return fmt.Sprintf("%s%s#%s", stateKeyPrefix, account.Name, account.Tag)
}

// LoadState retrieves an account's state from Redis
func (r *redisRepository) LoadState(ctx context.Context, input *LoadStateInput) (*models.AccountState, error) {
	if input == nil || !input.Account.IsValid() {
		return nil, errors.New("input and account cannot be empty")
	}

	stateJSON, err := r.client.Get(ctx, StateKey(input.Account)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.NewAccountState(), nil
		}
		return nil, fmt.Errorf("failed to get account state: %w", err)
	}

	var state models.AccountState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account state: %w", err)
	}
	if state.Standings == nil {
		state.Standings = make(map[models.QueueType]*models.RankedStanding)
	}

	return &state, nil
}

// SaveState persists an account's state to Redis
func (r *redisRepository) SaveState(ctx context.Context, input *SaveStateInput) error {
	if input == nil || input.State == nil {
		return errors.New("input and state cannot be nil")
	}

	if !input.Account.IsValid() {
		return errors.New("account cannot be empty")
	}

	state := input.State.Clone()
	state.UpdatedAt = r.clock.Now()

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal account state: %w", err)
	}

	// No expiration, state lives as long as the account is configured
	if err := r.client.Set(ctx, StateKey(input.Account), stateJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save account state: %w", err)
	}

	input.State.UpdatedAt = state.UpdatedAt

	return nil
}
