package service

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/repository"
	"github.com/obrazplus/furniture-inventory/internal/testutil"
)

type fixture struct {
	db    *gorm.DB
	repos *repository.Repositories
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return &fixture{db: db, repos: repository.NewRepositories(db)}
}

func newTestServices(t *testing.T) (*Services, *fixture) {
	t.Helper()
	fx := newFixture(t)
	return NewServices(fx.repos, fx.db, zap.NewNop()), fx
}
