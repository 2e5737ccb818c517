package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/documents"
	"legal-docs-workers/internal/repository"
)

// ==========================
// Mocks
// ==========================

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) GetRecordByID(ctx context.Context, id, ownerID string) (*documents.Record, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Record), args.Error(1)
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func sampleRecord() *documents.Record {
	return &documents.Record{
		ID:      "42",
		OwnerID: "user-1",
		Type:    "acta_consejo",
		Fields:  map[string]interface{}{"razon_social": "Grupo Norte"},
		Blocks:  map[string]json.RawMessage{"orden_dia": json.RawMessage(`[{"titulo":"Informe"}]`)},
	}
}

// ==========================
// CachedRecordRepository
// ==========================

func TestCachedRecordRepository_ReadThrough(t *testing.T) {
	mr, client := setupRedis(t)
	inner := new(MockRecordRepository)
	inner.On("GetRecordByID", mock.Anything, "42", "user-1").Return(sampleRecord(), nil).Once()

	repo := repository.NewCachedRecordRepository(inner, client, 5*time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	first, err := repo.GetRecordByID(ctx, "42", "user-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("record:user-1:42"))
	assert.Equal(t, 5*time.Minute, mr.TTL("record:user-1:42"))

	second, err := repo.GetRecordByID(ctx, "42", "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, "Grupo Norte", second.String("razon_social"))
	assert.JSONEq(t, `[{"titulo":"Informe"}]`, string(second.Blocks["orden_dia"]))
	inner.AssertExpectations(t)
}

func TestCachedRecordRepository_Invalidate(t *testing.T) {
	_, client := setupRedis(t)
	inner := new(MockRecordRepository)
	inner.On("GetRecordByID", mock.Anything, "42", "user-1").Return(sampleRecord(), nil).Twice()

	repo := repository.NewCachedRecordRepository(inner, client, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	_, err := repo.GetRecordByID(ctx, "42", "user-1")
	require.NoError(t, err)
	require.NoError(t, repo.Invalidate(ctx, "42", "user-1"))
	_, err = repo.GetRecordByID(ctx, "42", "user-1")
	require.NoError(t, err)

	inner.AssertExpectations(t)
}

func TestCachedRecordRepository_RedisDown(t *testing.T) {
	mr, client := setupRedis(t)
	mr.Close()

	inner := new(MockRecordRepository)
	inner.On("GetRecordByID", mock.Anything, "42", "user-1").Return(sampleRecord(), nil)

	repo := repository.NewCachedRecordRepository(inner, client, time.Minute, logger.NewTestLogger(t))
	rec, err := repo.GetRecordByID(context.Background(), "42", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "42", rec.ID)
}

func TestCachedRecordRepository_InnerErrorNotCached(t *testing.T) {
	mr, client := setupRedis(t)
	inner := new(MockRecordRepository)
	inner.On("GetRecordByID", mock.Anything, "9", "user-1").
		Return(nil, apperrors.NewRecordNotFoundError("9", "user-1"))

	repo := repository.NewCachedRecordRepository(inner, client, time.Minute, logger.NewTestLogger(t))
	_, err := repo.GetRecordByID(context.Background(), "9", "user-1")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeRecordNotFound, apperrors.Normalize(err).Code)
	assert.False(t, mr.Exists("record:user-1:9"))
}

// ==========================
// OutputCache
// ==========================

func TestOutputCache_Put(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	content := []byte("PK\x03\x04docx")

	redisMock.ExpectSet("docx:gen-1", content, time.Hour).SetVal("OK")

	cache := repository.NewOutputCache(client, time.Hour)
	key, err := cache.Put(context.Background(), "gen-1", content)

	require.NoError(t, err)
	assert.Equal(t, "docx:gen-1", key)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestOutputCache_PutFailure(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	content := []byte("PK")

	redisMock.ExpectSet("docx:gen-2", content, time.Hour).SetErr(assert.AnError)

	cache := repository.NewOutputCache(client, time.Hour)
	key, err := cache.Put(context.Background(), "gen-2", content)

	assert.Empty(t, key)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCacheWriteFailed, apperrors.Normalize(err).Code)
}

func TestOutputCache_Get(t *testing.T) {
	mr, client := setupRedis(t)
	cache := repository.NewOutputCache(client, time.Hour)
	ctx := context.Background()

	key, err := cache.Put(ctx, "gen-3", []byte("contenido"))
	require.NoError(t, err)

	data, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("contenido"), data)

	mr.FastForward(2 * time.Hour)
	_, err = cache.Get(ctx, key)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeRecordNotFound, apperrors.Normalize(err).Code)
}
