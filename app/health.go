package app

import (
	"os"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/anish-ck/oruva-settlement/models"
)

const (
	HealthServiceName = "HEALTH"
)

type HealthCheckRunner struct {
	instanceId    string
	hostname      string
	minterAddress string
	tokenAddress  string

	mu       sync.RWMutex
	services []Service
}

func (x *HealthCheckRunner) Run() {
	x.PostHealth()
}

func (x *HealthCheckRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{}
}

func (x *HealthCheckRunner) FindLastHealth() (models.Health, error) {
	var health models.Health
	filter := bson.M{
		"instance_id": x.instanceId,
		"hostname":    x.hostname,
	}
	err := DB.FindOne(models.CollectionHealthChecks, filter, &health)
	return health, err
}

func (x *HealthCheckRunner) SetServices(services []Service) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.services = services
}

// ServiceHealths returns the health of every enabled service.
func (x *HealthCheckRunner) ServiceHealths() []models.ServiceHealth {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var serviceHealths []models.ServiceHealth
	for _, service := range x.services {
		if service == nil {
			continue
		}
		health := service.Health()
		if health.Name == EmptyServiceName {
			continue
		}
		serviceHealths = append(serviceHealths, health)
	}
	return serviceHealths
}

// Snapshot returns the current health of this instance without touching the database.
func (x *HealthCheckRunner) Snapshot() models.Health {
	serviceHealths := x.ServiceHealths()
	healthy := true
	for _, h := range serviceHealths {
		if !h.Healthy {
			healthy = false
		}
	}

	return models.Health{
		InstanceId:     x.instanceId,
		Hostname:       x.hostname,
		MinterAddress:  x.minterAddress,
		TokenAddress:   x.tokenAddress,
		Healthy:        healthy,
		ServiceHealths: serviceHealths,
		UpdatedAt:      time.Now(),
	}
}

func (x *HealthCheckRunner) PostHealth() bool {
	log.Debug("[HEALTH] Posting health")

	snapshot := x.Snapshot()

	filter := bson.M{
		"instance_id": x.instanceId,
		"hostname":    x.hostname,
	}

	onInsert := bson.M{
		"minter_address": x.minterAddress,
		"token_address":  x.tokenAddress,
		"hostname":       x.hostname,
		"instance_id":    x.instanceId,
		"created_at":     time.Now(),
	}

	onUpdate := bson.M{
		"healthy":         snapshot.Healthy,
		"service_healths": snapshot.ServiceHealths,
		"updated_at":      snapshot.UpdatedAt,
	}

	update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

	err := DB.UpsertOne(models.CollectionHealthChecks, filter, update)
	if err != nil {
		log.Error("[HEALTH] Error posting health: ", err)
		return false
	}

	log.Debug("[HEALTH] Posted health")
	return true
}

func NewHealthCheck(minterAddress string) *HealthCheckRunner {
	log.Debug("[HEALTH] Initializing health")

	hostname, err := os.Hostname()
	if err != nil {
		log.Fatal("[HEALTH] Error getting hostname: ", err)
	}

	minter := strings.ToLower(minterAddress)
	x := &HealthCheckRunner{
		instanceId:    "oruva-settlement-" + minter,
		hostname:      hostname,
		minterAddress: minter,
		tokenAddress:  strings.ToLower(Config.Ethereum.TokenAddress),
	}

	log.Info("[HEALTH] Initialized health")
	return x
}
