package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSetAndGetItem() {
	err := s.storage.SetItem(s.ctx, "key", "value")
	s.Require().NoError(err)

	value, found, err := s.storage.GetItem(s.ctx, "key")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("value", value)
}

func (s *StorageSuite) TestGetItemNotFound() {
	value, found, err := s.storage.GetItem(s.ctx, "missing")
	s.Require().NoError(err)
	s.False(found)
	s.Empty(value)
}

func (s *StorageSuite) TestSetItemOverwrites() {
	_ = s.storage.SetItem(s.ctx, "key", "first")
	_ = s.storage.SetItem(s.ctx, "key", "second")

	value, _, err := s.storage.GetItem(s.ctx, "key")
	s.Require().NoError(err)
	s.Equal("second", value)
}

func (s *StorageSuite) TestRemoveItem() {
	_ = s.storage.SetItem(s.ctx, "key", "value")

	err := s.storage.RemoveItem(s.ctx, "key")
	s.Require().NoError(err)

	_, found, err := s.storage.GetItem(s.ctx, "key")
	s.Require().NoError(err)
	s.False(found)
}

func (s *StorageSuite) TestRemoveMissingItemIsNotAnError() {
	s.NoError(s.storage.RemoveItem(s.ctx, "missing"))
}

func (s *StorageSuite) TestClear() {
	_ = s.storage.SetItem(s.ctx, "a", "1")
	_ = s.storage.SetItem(s.ctx, "b", "2")

	err := s.storage.Clear(s.ctx)
	s.Require().NoError(err)

	_, foundA, _ := s.storage.GetItem(s.ctx, "a")
	_, foundB, _ := s.storage.GetItem(s.ctx, "b")
	s.False(foundA)
	s.False(foundB)
}
