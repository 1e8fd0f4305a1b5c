package store

import (
	"context"

	"civiclens/models"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 5

// RedisStore keeps every issue in one JSON array under a single key, the same shape the
// browser client used for local storage. Writes are optimistic WATCH transactions.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Save(ctx context.Context, issue models.Issue) error {
	return s.update(ctx, func(issues []models.Issue) ([]models.Issue, error) {
		return append(issues, issue), nil
	})
}

func (s *RedisStore) List(ctx context.Context) ([]models.Issue, error) {
	return s.load(ctx, s.client)
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.Issue, error) {
	issues, err := s.load(ctx, s.client)
	if err != nil {
		return models.Issue{}, err
	}
	for _, issue := range issues {
		if issue.ID == id {
			return issue, nil
		}
	}
	return models.Issue{}, ErrIssueNotFound
}

func (s *RedisStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	return s.update(ctx, func(issues []models.Issue) ([]models.Issue, error) {
		for i := range issues {
			if issues[i].ID == id {
				issues[i].Status = status
				return issues, nil
			}
		}
		return nil, ErrIssueNotFound
	})
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.update(ctx, func(issues []models.Issue) ([]models.Issue, error) {
		for i := range issues {
			if issues[i].ID == id {
				return append(issues[:i], issues[i+1:]...), nil
			}
		}
		return nil, ErrIssueNotFound
	})
}

func (s *RedisStore) load(ctx context.Context, cmd redis.Cmdable) ([]models.Issue, error) {
	raw, err := cmd.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return []models.Issue{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", s.key)
	}

	var issues []models.Issue
	if err := json.Unmarshal(raw, &issues); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", s.key)
	}
	return issues, nil
}

func (s *RedisStore) update(ctx context.Context, fn func([]models.Issue) ([]models.Issue, error)) error {
	txf := func(tx *redis.Tx) error {
		issues, err := s.load(ctx, tx)
		if err != nil {
			return err
		}

		updated, err := fn(issues)
		if err != nil {
			return err
		}

		data, err := json.Marshal(updated)
		if err != nil {
			return errors.Wrap(err, "encoding issues")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if err != redis.TxFailedErr {
			return err
		}
	}
	return errors.Errorf("updating %s: too much contention", s.key)
}
