package carrierrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/carrierrepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type CarrierRepositoryTestSuite struct {
	suite.Suite
	pg   *pgtest.Database
	repo *carrierrepo.GormCarrierRepository
}

func (suite *CarrierRepositoryTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repo = carrierrepo.NewGormCarrierRepository(pg.DB)
}

func (suite *CarrierRepositoryTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Stop(context.Background()))
	}
}

func (suite *CarrierRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))
}

func (suite *CarrierRepositoryTestSuite) TestAddGetUpdate() {
	ctx := context.Background()
	c := suite.newCarrier("LIC-0001")
	suite.Require().NoError(suite.repo.Add(ctx, c))

	got, err := suite.repo.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal("LIC-0001", got.LicenseID())
	suite.Equal("Ana Gomez", got.Name())
	suite.False(got.InTransit())

	suite.Require().NoError(c.Depart())
	suite.Require().NoError(suite.repo.Update(ctx, c))

	got, err = suite.repo.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.True(got.InTransit())
}

func (suite *CarrierRepositoryTestSuite) TestAdd_DuplicateLicenseIsConflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Add(ctx, suite.newCarrier("LIC-0002")))

	err := suite.repo.Add(ctx, suite.newCarrier("LIC-0002"))

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Contains(err.Error(), "license is already registered")
}

func (suite *CarrierRepositoryTestSuite) TestGetForUpdate_Missing() {
	tx := suite.pg.DB.Begin()
	defer tx.Rollback()

	_, err := carrierrepo.NewGormCarrierRepository(tx).GetForUpdate(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CarrierRepositoryTestSuite) newCarrier(license string) *carrier.Carrier {
	c, err := carrier.NewCarrier(kernel.NewUUID(), license, "Ana Gomez", time.Now().UTC())
	suite.Require().NoError(err)
	return c
}

func TestCarrierRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CarrierRepositoryTestSuite))
}
