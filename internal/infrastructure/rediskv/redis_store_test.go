package rediskv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerkv/account-ledger/internal/kv"
	"github.com/ledgerkv/account-ledger/internal/testutil"
)

type RedisStoreTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *testutil.RedisContainer
	store     *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.container, err = testutil.NewRedisContainer(s.ctx)
	require.NoError(s.T(), err)

	s.store = NewFromClient(s.container.Client)
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(s.ctx)
		assert.NoError(s.T(), err)
	}
}

func (s *RedisStoreTestSuite) SetupTest() {
	require.NoError(s.T(), s.container.Client.FlushAll(s.ctx).Err())
}

func (s *RedisStoreTestSuite) TestGetAbsent() {
	_, err := s.store.Get(s.ctx, "missing")
	s.ErrorIs(err, kv.ErrKeyNotFound)
}

func (s *RedisStoreTestSuite) TestSetGetOverwrite() {
	s.Require().NoError(s.store.Set(s.ctx, "a", []byte("one")))

	v, err := s.store.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal([]byte("one"), v)

	s.Require().NoError(s.store.Set(s.ctx, "a", []byte("two")))
	v, err = s.store.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal([]byte("two"), v)
}

func (s *RedisStoreTestSuite) TestDeleteIdempotent() {
	s.Require().NoError(s.store.Set(s.ctx, "a", []byte("one")))
	s.Require().NoError(s.store.Delete(s.ctx, "a"))

	_, err := s.store.Get(s.ctx, "a")
	s.ErrorIs(err, kv.ErrKeyNotFound)

	s.Require().NoError(s.store.Delete(s.ctx, "a"))
	s.Require().NoError(s.store.Delete(s.ctx, "never-set"))
}

func (s *RedisStoreTestSuite) TestAll() {
	s.Require().NoError(s.store.Set(s.ctx, "a", []byte("1")))
	s.Require().NoError(s.store.Set(s.ctx, "b", []byte("2")))
	s.Require().NoError(s.store.Set(s.ctx, "c", []byte("3")))

	all, err := s.store.All(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Equal([]byte("2"), all["b"])
}
