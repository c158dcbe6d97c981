package main

import (
	"sync"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/reconcile"
	"github.com/anish-ck/oruva-settlement/settlement"
	"github.com/anish-ck/oruva-settlement/store"
)

type ServiceFactory func(wg *sync.WaitGroup) app.Service

// ServiceNames fixes the start order of the background services.
var ServiceNames = []string{
	settlement.WorkerName,
	reconcile.SweeperName,
}

// Components are the shared collaborators the background services are built from.
type Components struct {
	Orders     store.OrderStore
	Jobs       store.JobQueue
	Settler    settlement.Settler
	Reconciler reconcile.Reconciler
	Purger     settlement.LockPurger
}

// CreateService builds a service and resumes its counters from the last posted health, if any.
func CreateService(
	wg *sync.WaitGroup,
	serviceName string,
	serviceHealthMap map[string]models.ServiceHealth,
	createService ServiceFactory,
) app.Service {
	service := createService(wg)
	serviceHealth, ok := serviceHealthMap[serviceName]
	if !ok {
		return service
	}
	if runner, ok := service.(*app.RunnerService); ok {
		runner.ResumeFrom(serviceHealth)
	}
	return service
}

func GetServiceFactories(components *Components) map[string]ServiceFactory {
	services := map[string]ServiceFactory{
		settlement.WorkerName: func(wg *sync.WaitGroup) app.Service {
			return settlement.NewWorker(wg, components.Jobs, components.Orders, components.Settler, components.Purger)
		},
		reconcile.SweeperName: func(wg *sync.WaitGroup) app.Service {
			return reconcile.NewSweeper(wg, components.Orders, components.Reconciler)
		},
	}

	return services
}
