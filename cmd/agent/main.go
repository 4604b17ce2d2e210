package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"symcalc/internal/compute"
	"symcalc/internal/config"
	"symcalc/internal/rpc"
)

var jobsProcessed atomic.Int64

func main() {
	cfg := config.Load()

	orchestratorAddr := os.Getenv("ORCHESTRATOR_GRPC_ADDR")
	if orchestratorAddr == "" {
		orchestratorAddr = "localhost:" + cfg.GRPCPort
	}

	client, err := rpc.NewWorkerClient(orchestratorAddr)
	if err != nil {
		log.Fatalf("Failed to create gRPC client: %v", err)
	}
	defer client.Close()

	registry := compute.Builtin(cfg)

	// Небольшой HTTP сервер для проверки живости агента
	go serveHealth(cfg.AgentPort)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < cfg.ComputingPower; i++ {
		workerID := i
		g.Go(func() error {
			agentID := uuid.New().String()
			log.Printf("Worker %d (агент %s) запущен", workerID, agentID)
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				processJob(client, registry, workerID, agentID)
			}
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Агент остановлен: %v", err)
	}
}

// processJob забирает одно задание, исполняет его под таймаутом
// задания и отправляет итог оркестратору.
func processJob(client *rpc.WorkerClient, registry *compute.Registry, workerID int, agentID string) {
	var job *rpc.Job
	var err error

	maxRetries := 3
	retryDelay := time.Second

	for retry := 0; retry < maxRetries; retry++ {
		job, err = client.NextJob(agentID)
		if err == nil {
			break
		}

		log.Printf("Worker %d (агент %s): ошибка получения задания (попытка %d/%d): %v",
			workerID, agentID, retry+1, maxRetries, err)
		time.Sleep(retryDelay)
		retryDelay *= 2
	}

	if err != nil || job == nil {
		// Нет заданий или оркестратор недоступен
		time.Sleep(time.Second)
		return
	}

	result := executeJob(registry, job)
	jobsProcessed.Add(1)

	retryDelay = time.Second
	for retry := 0; retry < maxRetries; retry++ {
		err = client.Complete(result)
		if err == nil {
			return
		}

		log.Printf("Worker %d (агент %s): ошибка отправки результата (попытка %d/%d): %v",
			workerID, agentID, retry+1, maxRetries, err)
		time.Sleep(retryDelay)
		retryDelay *= 2
	}

	log.Printf("Worker %d (агент %s): не удалось отправить результат задания %s",
		workerID, agentID, job.ID)
}

func executeJob(registry *compute.Registry, job *rpc.Job) *rpc.JobResult {
	fn, ok := registry.Lookup(job.Op)
	if !ok {
		return &rpc.JobResult{ID: job.ID, ErrorMessage: "unknown computation: " + job.Op}
	}

	timeout := time.Duration(job.TimeoutMs) * time.Millisecond
	value, err := compute.RunWithTimeout(context.Background(), fn, job.Payload, timeout)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		// Вычисление прервано по собственному таймауту задания
		return &rpc.JobResult{ID: job.ID, ErrorMessage: "calculation timeout", Stopped: true}
	case err != nil:
		return &rpc.JobResult{ID: job.ID, ErrorMessage: err.Error()}
	default:
		return &rpc.JobResult{ID: job.ID, Value: value}
	}
}

func serveHealth(port string) {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	r.HandleFunc("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"jobs_processed": strconv.FormatInt(jobsProcessed.Load(), 10),
		})
	}).Methods("GET")

	log.Printf("Агент: HTTP сервер статуса на порту %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Printf("Агент: HTTP сервер статуса остановлен: %v", err)
	}
}
