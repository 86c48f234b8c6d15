package rabbitmq_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"logistics/internal/adapters/out/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const exchange = "shipment.status"

type PublisherTestSuite struct {
	suite.Suite
	container testcontainers.Container
	url       string
	publisher *rabbitmq.Publisher
}

func (suite *PublisherTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor: wait.ForLog("Server startup complete").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	suite.Require().NoError(err)
	suite.url = fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())

	publisher, err := rabbitmq.Dial(suite.url, exchange)
	suite.Require().NoError(err)
	suite.publisher = publisher
}

func (suite *PublisherTestSuite) TearDownSuite() {
	if suite.publisher != nil {
		suite.Require().NoError(suite.publisher.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PublisherTestSuite) TestPublish_RoutesByTrackingCode() {
	ctx := context.Background()

	conn, err := amqp.Dial(suite.url)
	suite.Require().NoError(err)
	defer conn.Close()
	ch, err := conn.Channel()
	suite.Require().NoError(err)
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(ch.QueueBind(q.Name, rabbitmq.RoutingKeyPrefix+"ABC123", exchange, false, nil))
	msgs, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.publisher.Publish(ctx, "OTHER1", []byte(`{"trackingCode":"OTHER1"}`)))
	suite.Require().NoError(suite.publisher.Publish(ctx, "ABC123", []byte(`{"trackingCode":"ABC123"}`)))

	select {
	case m := <-msgs:
		suite.Equal("status.ABC123", m.RoutingKey)
		suite.Equal("application/json", m.ContentType)
		suite.JSONEq(`{"trackingCode":"ABC123"}`, string(m.Body))
	case <-time.After(5 * time.Second):
		suite.Fail("no message received")
	}

	select {
	case m := <-msgs:
		suite.Failf("unexpected message", "routing key %s", m.RoutingKey)
	case <-time.After(200 * time.Millisecond):
	}
}

func (suite *PublisherTestSuite) TestDial_RequiresExchange() {
	_, err := rabbitmq.Dial(suite.url, "")
	suite.Require().Error(err)
}

func TestPublisherTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherTestSuite))
}
