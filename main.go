package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/api"
	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/eth"
	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/payments"
	"github.com/anish-ck/oruva-settlement/reconcile"
	"github.com/anish-ck/oruva-settlement/settlement"
	"github.com/anish-ck/oruva-settlement/store"
	"github.com/anish-ck/oruva-settlement/vault"
	"github.com/anish-ck/oruva-settlement/webhook"
)

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		log.Fatal("[MAIN] Invalid path: ", path)
	}
	return abs
}

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	var configPath string
	var envPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&envPath, "env", "", "path to env file")
	flag.Parse()

	app.InitConfig(absPath(configPath), absPath(envPath))
	app.InitLogger()
	app.InitDB()

	signer, err := app.CreateEthereumSigner()
	if err != nil {
		log.Fatal("[MAIN] Error creating signer: ", err)
	}
	gateway := eth.NewGateway(signer)

	orders, closeOrders, err := store.OpenOrderStore(context.Background())
	if err != nil {
		log.Fatal("[MAIN] Error opening order store: ", err)
	}
	jobs := store.NewMongoJobQueue(app.DB)
	paymentClient := payments.NewClient()

	executor := settlement.NewExecutor(orders, gateway, app.DB)
	reconciler := reconcile.NewService(orders, paymentClient, executor)

	healthcheck := app.NewHealthCheck(gateway.MinterAddress())

	serviceHealthMap := make(map[string]models.ServiceHealth)
	if app.Config.HealthCheck.ReadLastHealth {
		if lastHealth, err := healthcheck.FindLastHealth(); err == nil {
			for _, serviceHealth := range lastHealth.ServiceHealths {
				serviceHealthMap[serviceHealth.Name] = serviceHealth
			}
		} else {
			log.Warn("[MAIN] Could not read last health: ", err)
		}
	}

	wg := &sync.WaitGroup{}

	components := &Components{
		Orders:     orders,
		Jobs:       jobs,
		Settler:    executor,
		Reconciler: reconciler,
		Purger:     app.DB,
	}
	factories := GetServiceFactories(components)

	var services []app.Service
	for _, serviceName := range ServiceNames {
		services = append(services, CreateService(wg, serviceName, serviceHealthMap, factories[serviceName]))
	}

	handler := &api.Handler{
		Orders:     orders,
		Creator:    api.NewOrderService(orders, paymentClient),
		Webhooks:   webhook.NewHandler(app.Config.PaymentGateway.WebhookSecret, jobs),
		Reconciler: reconciler,
		Chain:      gateway,
		Vaults:     vault.NewService(gateway),
		Health:     healthcheck,
	}
	services = append(services, api.NewServer(wg, handler))

	healthcheck.SetServices(services)
	healthService := app.NewRunnerService(
		app.HealthServiceName,
		healthcheck,
		wg,
		time.Duration(app.Config.HealthCheck.IntervalMillis)*time.Millisecond,
	)
	services = append(services, healthService)

	wg.Add(len(services))
	for _, service := range services {
		go service.Start()
	}

	log.Info("[MAIN] Server started")

	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("[MAIN] Stopping server gracefully")

	for _, service := range services {
		service.Stop()
	}
	wg.Wait()

	closeOrders()
	signer.Destroy()
	if err := app.DB.Disconnect(); err != nil {
		log.Warn("[MAIN] Error disconnecting database: ", err)
	}
	log.Info("[MAIN] Server stopped")
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("[MAIN] Got signal: ", sig)
	done <- true
}
