package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/carrierrepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/adapters/out/postgres/routerepo"
	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/adapters/out/postgres/vehiclerepo"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type ShipmentRepositoryTestSuite struct {
	suite.Suite
	pg   *pgtest.Database
	repo *shipmentrepo.GormShipmentRepository
}

func (suite *ShipmentRepositoryTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repo = shipmentrepo.NewGormShipmentRepository(pg.DB)
}

func (suite *ShipmentRepositoryTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Stop(context.Background()))
	}
}

func (suite *ShipmentRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))
}

func (suite *ShipmentRepositoryTestSuite) TestAdd_AndGetByEitherLookup() {
	ctx := context.Background()
	s := suite.newShipment("ABC123")
	suite.Require().NoError(suite.repo.Add(ctx, s))

	byID, err := suite.repo.Get(ctx, ports.ShipmentByID(s.ID()))
	suite.Require().NoError(err)
	byCode, err := suite.repo.Get(ctx, ports.ShipmentByTrackingCode(s.TrackingCode()))
	suite.Require().NoError(err)

	for _, got := range []*shipment.Shipment{byID, byCode} {
		suite.True(got.IsEqual(s))
		suite.Equal(s.TrackingCode(), got.TrackingCode())
		suite.Equal(s.Address(), got.Address())
		suite.InDelta(s.Volume(), got.Volume(), 1e-9)
		suite.InDelta(s.Weight(), got.Weight(), 1e-9)
		suite.Nil(got.RouteID())
		suite.WithinDuration(s.CreatedAt(), got.CreatedAt(), time.Millisecond)
	}
}

func (suite *ShipmentRepositoryTestSuite) TestAdd_DuplicateTrackingCodeIsConflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Add(ctx, suite.newShipment("DUP001")))

	err := suite.repo.Add(ctx, suite.newShipment("DUP001"))

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Contains(err.Error(), "tracking code is already taken")
}

func (suite *ShipmentRepositoryTestSuite) TestGet_Missing() {
	_, err := suite.repo.Get(context.Background(), ports.ShipmentByTrackingCode(mustCode("NOPE01")))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryTestSuite) TestUpdateRoute_AndLockedReads() {
	ctx := context.Background()
	r := suite.newRoute()
	a, b, c := suite.newShipment("AAA001"), suite.newShipment("BBB002"), suite.newShipment("CCC003")
	for _, s := range []*shipment.Shipment{a, b, c} {
		suite.Require().NoError(suite.repo.Add(ctx, s))
	}
	suite.Require().NoError(a.AssignTo(r.ID()))
	suite.Require().NoError(b.AssignTo(r.ID()))

	suite.Require().NoError(suite.repo.UpdateRoute(ctx, r.ID(), []*shipment.Shipment{a, b}))

	tx := suite.pg.DB.Begin()
	defer tx.Rollback()
	repo := shipmentrepo.NewGormShipmentRepository(tx)

	onRoute, err := repo.GetByRouteForUpdate(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Len(onRoute, 2)
	for _, s := range onRoute {
		suite.True(s.IsAssignedTo(r.ID()))
	}

	many, err := repo.GetManyForUpdate(ctx, []kernel.UUID{c.ID(), kernel.NewUUID(), a.ID()})
	suite.Require().NoError(err)
	suite.Len(many, 2, "unknown ids are left out")
	suite.True(many[0].ID().Less(many[1].ID()), "rows come back in id order")
}

func (suite *ShipmentRepositoryTestSuite) TestUpdateRoute_AlreadyAssignedIsConflict() {
	ctx := context.Background()
	r1, r2 := suite.newRoute(), suite.newRoute()
	s := suite.newShipment("TWO001")
	suite.Require().NoError(suite.repo.Add(ctx, s))
	suite.Require().NoError(s.AssignTo(r1.ID()))
	suite.Require().NoError(suite.repo.UpdateRoute(ctx, r1.ID(), []*shipment.Shipment{s}))

	// A stale copy that never saw the first assignment.
	stale, err := shipment.RestoreShipment(s.ID(), s.TrackingCode(), s.Address(), s.Dimensions(),
		s.Weight(), s.ProductType(), nil, true, s.CreatedAt())
	suite.Require().NoError(err)
	suite.Require().NoError(stale.AssignTo(r2.ID()))

	err = suite.repo.UpdateRoute(ctx, r2.ID(), []*shipment.Shipment{stale})

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *ShipmentRepositoryTestSuite) TestUpdateRoute_RejectsUnassignedAggregate() {
	ctx := context.Background()
	r := suite.newRoute()
	s := suite.newShipment("NOT001")
	suite.Require().NoError(suite.repo.Add(ctx, s))

	err := suite.repo.UpdateRoute(ctx, r.ID(), []*shipment.Shipment{s})

	suite.Require().ErrorIs(err, errs.ErrValidation)
}

func (suite *ShipmentRepositoryTestSuite) newShipment(code string) *shipment.Shipment {
	dims, err := kernel.NewDimensions(2, 4, 5)
	suite.Require().NoError(err)
	s, err := shipment.NewShipment(kernel.NewUUID(), mustCode(code), "Calle 10 #4-21", dims, 12.5, "Books",
		time.Now().UTC())
	suite.Require().NoError(err)
	return s
}

func (suite *ShipmentRepositoryTestSuite) newRoute() *route.Route {
	ctx := context.Background()
	now := time.Now().UTC()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "TRK-"+kernel.NewUUID().String()[:8], 1000, 100, now)
	suite.Require().NoError(err)
	c, err := carrier.NewCarrier(kernel.NewUUID(), "LIC-"+kernel.NewUUID().String()[:8], "Ana Gomez", now)
	suite.Require().NoError(err)
	r, err := route.NewRoute(kernel.NewUUID(), c.ID(), v.ID(), "Warehouse A", "Store 12", now)
	suite.Require().NoError(err)

	suite.Require().NoError(vehiclerepo.NewGormVehicleRepository(suite.pg.DB).Add(ctx, v))
	suite.Require().NoError(carrierrepo.NewGormCarrierRepository(suite.pg.DB).Add(ctx, c))
	suite.Require().NoError(routerepo.NewGormRouteRepository(suite.pg.DB).Add(ctx, r))
	return r
}

func mustCode(s string) kernel.TrackingCode {
	code, err := kernel.TrackingCodeFromString(s)
	if err != nil {
		panic(err)
	}
	return code
}

func TestShipmentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryTestSuite))
}
