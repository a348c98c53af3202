package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	path    string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "timeu6.db")

	store, err := Open(s.path)
	s.Require().NoError(err)

	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	_ = s.storage.Close()
}

func (s *StorageSuite) TestOpenRequiresPath() {
	_, err := Open("  ")
	s.Error(err)
}

func (s *StorageSuite) TestSetAndGetItem() {
	err := s.storage.SetItem(s.ctx, "key", "value")
	s.Require().NoError(err)

	value, found, err := s.storage.GetItem(s.ctx, "key")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("value", value)
}

func (s *StorageSuite) TestSetItemOverwrites() {
	_ = s.storage.SetItem(s.ctx, "key", "first")
	_ = s.storage.SetItem(s.ctx, "key", "second")

	value, _, err := s.storage.GetItem(s.ctx, "key")
	s.Require().NoError(err)
	s.Equal("second", value)
}

func (s *StorageSuite) TestGetItemNotFound() {
	_, found, err := s.storage.GetItem(s.ctx, "missing")
	s.Require().NoError(err)
	s.False(found)
}

func (s *StorageSuite) TestRemoveItem() {
	_ = s.storage.SetItem(s.ctx, "key", "value")

	s.Require().NoError(s.storage.RemoveItem(s.ctx, "key"))

	_, found, err := s.storage.GetItem(s.ctx, "key")
	s.Require().NoError(err)
	s.False(found)
}

func (s *StorageSuite) TestClear() {
	_ = s.storage.SetItem(s.ctx, "a", "1")
	_ = s.storage.SetItem(s.ctx, "b", "2")

	s.Require().NoError(s.storage.Clear(s.ctx))

	_, foundA, _ := s.storage.GetItem(s.ctx, "a")
	_, foundB, _ := s.storage.GetItem(s.ctx, "b")
	s.False(foundA)
	s.False(foundB)
}

func (s *StorageSuite) TestItemsSurviveReopen() {
	_ = s.storage.SetItem(s.ctx, "key", "value")
	s.Require().NoError(s.storage.Close())

	reopened, err := Open(s.path)
	s.Require().NoError(err)
	s.storage = reopened

	value, found, err := reopened.GetItem(s.ctx, "key")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("value", value)
}
