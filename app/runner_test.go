package app

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/anish-ck/oruva-settlement/models"
)

// MockRunner counts its runs and reports them as processed.
type MockRunner struct {
	mu   sync.Mutex
	runs int64
}

func (m *MockRunner) Run() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs += 1
}

func (m *MockRunner) Status() models.RunnerStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.RunnerStatus{
		EthBlockNumber: "456",
		Processed:      m.runs,
		Failed:         1,
	}
}

func TestRunnerService(t *testing.T) {
	mockRunner := &MockRunner{}
	interval := 100 * time.Millisecond
	wg := &sync.WaitGroup{}
	service := NewRunnerService("TestService", mockRunner, wg, interval)
	wg.Add(1)

	go service.Start()

	time.Sleep(600 * time.Millisecond)

	service.Stop()

	wg.Wait()

	health := service.Health()
	assert.True(t, health.Healthy)
	assert.Equal(t, "TestService", health.Name)
	assert.GreaterOrEqual(t, health.Processed, int64(5))
	assert.Equal(t, int64(1), health.Failed)
	assert.Equal(t, "456", health.EthBlockNumber)
	assert.Equal(t, interval, health.NextSyncTime.Sub(health.LastSyncTime))
}

func TestRunnerServiceHealthBeforeFirstRun(t *testing.T) {
	service := NewRunnerService("Idle", &MockRunner{}, &sync.WaitGroup{}, time.Second)

	health := service.Health()
	assert.Equal(t, "Idle", health.Name)
	assert.False(t, health.Healthy)
	assert.Equal(t, int64(0), health.Processed)
}

func TestNewRunnerServiceInvalidParameters(t *testing.T) {
	wg := &sync.WaitGroup{}

	assert.Nil(t, NewRunnerService("", &MockRunner{}, wg, time.Second))
	assert.Nil(t, NewRunnerService("Test", nil, wg, time.Second))
	assert.Nil(t, NewRunnerService("Test", &MockRunner{}, nil, time.Second))
	assert.Nil(t, NewRunnerService("Test", &MockRunner{}, wg, 0))
}

func TestEmptyService(t *testing.T) {
	wg := &sync.WaitGroup{}
	wg.Add(1)
	service := NewEmptyService(wg)

	service.Start()
	service.Stop()
	wg.Wait()

	assert.Equal(t, EmptyServiceName, service.Health().Name)
	assert.True(t, service.Health().Healthy)
}

type resumingRunner struct {
	MockRunner
	resumed models.ServiceHealth
}

func (r *resumingRunner) Resume(lastHealth models.ServiceHealth) {
	r.resumed = lastHealth
}

func TestRunnerServiceResumeFrom(t *testing.T) {
	runner := &resumingRunner{}
	service := NewRunnerService("Resumed", runner, &sync.WaitGroup{}, time.Second)
	last := models.ServiceHealth{Name: "Resumed", Processed: 12, Failed: 3, LastSyncTime: time.Unix(1700000000, 0)}

	service.ResumeFrom(last)

	health := service.Health()
	assert.Equal(t, int64(12), health.Processed)
	assert.Equal(t, int64(3), health.Failed)
	assert.Equal(t, last.LastSyncTime, health.LastSyncTime)
	assert.Equal(t, last, runner.resumed)
}
