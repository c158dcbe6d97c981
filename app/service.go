package app

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/models"
)

type Service interface {
	Start()
	Stop()
	Health() models.ServiceHealth
}

type Runner interface {
	Run()
	Status() models.RunnerStatus
}

// Resumer is implemented by runners that carry counters over from the last posted health.
type Resumer interface {
	Resume(lastHealth models.ServiceHealth)
}

const EmptyServiceName = "empty"

// EmptyService stands in for a disabled service so the wait group stays balanced.
type EmptyService struct {
	wg *sync.WaitGroup
}

func (e *EmptyService) Start() {}

func (e *EmptyService) Stop() {
	e.wg.Done()
}

func (e *EmptyService) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:    EmptyServiceName,
		Healthy: true,
	}
}

func NewEmptyService(wg *sync.WaitGroup) Service {
	return &EmptyService{wg: wg}
}

type RunnerService struct {
	name     string
	runner   Runner
	stop     chan bool
	interval time.Duration
	wg       *sync.WaitGroup

	healthMu sync.RWMutex
	health   models.ServiceHealth
}

func (x *RunnerService) Start() {
	log.Infof("[%s] Starting service", x.name)
	stop := false
	for !stop {
		log.Debugf("[%s] Starting run", x.name)
		x.runner.Run()
		x.updateHealth()
		log.Debugf("[%s] Finished run, sleeping for %v", x.name, x.interval)

		select {
		case <-x.stop:
			stop = true
			log.Infof("[%s] Stopped service", x.name)
		case <-time.After(x.interval):
		}
	}
	x.wg.Done()
}

func (x *RunnerService) Stop() {
	log.Debugf("[%s] Stopping service", x.name)
	x.stop <- true
}

func (x *RunnerService) updateHealth() {
	status := x.runner.Status()
	now := time.Now()

	x.healthMu.Lock()
	defer x.healthMu.Unlock()

	x.health = models.ServiceHealth{
		Name:           x.name,
		LastSyncTime:   now,
		NextSyncTime:   now.Add(x.interval),
		EthBlockNumber: status.EthBlockNumber,
		Processed:      status.Processed,
		Failed:         status.Failed,
		Healthy:        true,
	}
}

// ResumeFrom seeds the runner and the reported health from a previous instance's health.
func (x *RunnerService) ResumeFrom(lastHealth models.ServiceHealth) {
	if resumer, ok := x.runner.(Resumer); ok {
		resumer.Resume(lastHealth)
	}

	x.healthMu.Lock()
	defer x.healthMu.Unlock()
	x.health.LastSyncTime = lastHealth.LastSyncTime
	x.health.Processed = lastHealth.Processed
	x.health.Failed = lastHealth.Failed
}

func (x *RunnerService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()

	return x.health
}

func NewRunnerService(
	name string,
	runner Runner,
	wg *sync.WaitGroup,
	interval time.Duration,
) *RunnerService {
	if name == "" || runner == nil || wg == nil || interval <= 0 {
		log.Debug("[RUNNER] Invalid parameters")
		return nil
	}

	return &RunnerService{
		name:     name,
		runner:   runner,
		stop:     make(chan bool, 1),
		interval: interval,
		wg:       wg,
		health:   models.ServiceHealth{Name: name},
	}
}
