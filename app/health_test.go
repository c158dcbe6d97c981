package app

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/anish-ck/oruva-settlement/app/mocks"
	"github.com/anish-ck/oruva-settlement/models"
)

func NewTestHealthCheck() *HealthCheckRunner {
	x := &HealthCheckRunner{
		instanceId:    "instanceId",
		hostname:      "hostname",
		minterAddress: "0xminter",
		tokenAddress:  "0xtoken",
	}
	return x
}

func TestHealthStatus(t *testing.T) {
	x := NewTestHealthCheck()

	status := x.Status()
	assert.Equal(t, status.EthBlockNumber, "")
	assert.Equal(t, status.Processed, int64(0))
}

func TestFindLastHealth(t *testing.T) {

	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		x := NewTestHealthCheck()
		filter := bson.M{
			"instance_id": x.instanceId,
			"hostname":    x.hostname,
		}
		var health models.Health
		mockDB.EXPECT().FindOne(models.CollectionHealthChecks, filter, &health).Return(nil)

		_, err := x.FindLastHealth()

		assert.Nil(t, err)
	})

	t.Run("With Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		x := NewTestHealthCheck()
		filter := bson.M{
			"instance_id": x.instanceId,
			"hostname":    x.hostname,
		}
		var health models.Health
		mockDB.EXPECT().FindOne(models.CollectionHealthChecks, filter, &health).Return(errors.New("error"))

		_, err := x.FindLastHealth()

		assert.NotNil(t, err)
		assert.Equal(t, err.Error(), "error")
	})

}

type MockService struct {
	healthy bool
}

func (e *MockService) Start() {}

func (e *MockService) Stop() {}

const MockServiceName = "mock"

func (e *MockService) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:         MockServiceName,
		LastSyncTime: time.Now(),
		NextSyncTime: time.Now(),
		Healthy:      e.healthy,
	}
}

func NewMockService() Service {
	return &MockService{healthy: true}
}

func TestServices(t *testing.T) {
	x := NewTestHealthCheck()
	wg := &sync.WaitGroup{}
	x.SetServices([]Service{
		NewEmptyService(wg),
		NewEmptyService(wg),
		NewMockService(),
	})

	assert.Equal(t, len(x.services), 3)

	assert.Equal(t, x.services[0].Health().Name, EmptyServiceName)
	assert.Equal(t, x.services[1].Health().Name, EmptyServiceName)
	assert.Equal(t, x.services[2].Health().Name, MockServiceName)
}

func TestServiceHealths(t *testing.T) {
	x := NewTestHealthCheck()
	wg := &sync.WaitGroup{}
	x.SetServices([]Service{
		NewEmptyService(wg),
		nil,
		NewMockService(),
	})

	healths := x.ServiceHealths()

	assert.Equal(t, len(healths), 1)
	assert.Equal(t, healths[0].Name, MockServiceName)
}

func TestSnapshot(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		x := NewTestHealthCheck()
		x.SetServices([]Service{NewMockService()})

		snapshot := x.Snapshot()

		assert.True(t, snapshot.Healthy)
		assert.Equal(t, "instanceId", snapshot.InstanceId)
		assert.Equal(t, "0xminter", snapshot.MinterAddress)
		assert.Len(t, snapshot.ServiceHealths, 1)
	})

	t.Run("One Unhealthy Service", func(t *testing.T) {
		x := NewTestHealthCheck()
		x.SetServices([]Service{NewMockService(), &MockService{healthy: false}})

		snapshot := x.Snapshot()

		assert.False(t, snapshot.Healthy)
	})
}

func TestPostHealth(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		x := NewTestHealthCheck()
		wg := &sync.WaitGroup{}
		x.SetServices([]Service{
			NewEmptyService(wg),
			NewEmptyService(wg),
			NewMockService(),
		})

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		filter := bson.M{
			"instance_id": x.instanceId,
			"hostname":    x.hostname,
		}

		onInsert := bson.M{
			"minter_address": x.minterAddress,
			"token_address":  x.tokenAddress,
			"hostname":       x.hostname,
			"instance_id":    x.instanceId,
			"created_at":     nil,
		}

		onUpdate := bson.M{
			"healthy":         true,
			"service_healths": []models.ServiceHealth{},
			"updated_at":      nil,
		}

		update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

		call := mockDB.EXPECT().UpsertOne(models.CollectionHealthChecks, filter, mock.Anything)
		call.Run(func(_ string, _ interface{}, arg interface{}) {

			updateArg := arg.(bson.M)

			updateArg["$setOnInsert"].(bson.M)["created_at"] = nil
			updateArg["$set"].(bson.M)["updated_at"] = nil
			updateArg["$set"].(bson.M)["service_healths"] = []models.ServiceHealth{}

			assert.Equal(t, updateArg, update)
		})
		call.Return(nil)

		success := x.PostHealth()
		assert.True(t, success)
	})

	t.Run("With Error", func(t *testing.T) {
		x := NewTestHealthCheck()
		wg := &sync.WaitGroup{}
		x.SetServices([]Service{
			NewEmptyService(wg),
			NewMockService(),
		})

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		call := mockDB.EXPECT().UpsertOne(mock.Anything, mock.Anything, mock.Anything)
		call.Return(errors.New("error"))

		success := x.PostHealth()
		assert.False(t, success)
	})

	t.Run("Via Run", func(t *testing.T) {
		x := NewTestHealthCheck()
		x.SetServices([]Service{NewMockService()})

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		call := mockDB.EXPECT().UpsertOne(mock.Anything, mock.Anything, mock.Anything)
		call.Return(errors.New("error"))

		x.Run()
	})

}

func TestNewHealthCheck(t *testing.T) {
	Config.Ethereum.TokenAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

	x := NewHealthCheck("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	hostname, _ := os.Hostname()

	assert.NotNil(t, x)
	assert.Equal(t, "oruva-settlement-0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", x.instanceId)
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", x.minterAddress)
	assert.Equal(t, "0x5fbdb2315678afecb367f032d93f642f64180aa3", x.tokenAddress)
	assert.Equal(t, hostname, x.hostname)
}
