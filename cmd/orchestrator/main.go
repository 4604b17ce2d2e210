package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"symcalc/internal/api"
	"symcalc/internal/compute"
	"symcalc/internal/config"
	"symcalc/internal/database"
	"symcalc/internal/dispatch"
	"symcalc/internal/queue"
	"symcalc/internal/rpc"
)

func main() {
	cfg := config.Load()

	store, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Не удалось открыть базу данных: %v", err)
	}
	defer store.Close()

	q := queue.New()

	// gRPC сервер раздает задания агентам
	go func() {
		grpcAddress := ":" + cfg.GRPCPort
		log.Printf("Starting gRPC server for agents on port %s", cfg.GRPCPort)
		if err := rpc.StartServer(grpcAddress, q); err != nil {
			log.Fatalf("Failed to start gRPC server: %v", err)
		}
	}()

	// Локальный режим: вычисления исполняются внутри процесса,
	// без отдельных агентов. Жесткого обрыва по таймауту в этом
	// режиме нет, он предназначен для разработки.
	if os.Getenv("LOCAL_COMPUTE") == "1" {
		registry := compute.Builtin(cfg)
		for i := 0; i < cfg.ComputingPower; i++ {
			runner := compute.NewRunner(q, registry, "local-"+strconv.Itoa(i))
			go runner.Run(context.Background())
		}
		log.Printf("Локальный режим: запущено %d воркеров внутри процесса", cfg.ComputingPower)
	}

	dispatcher := dispatch.FromConfig(q, cfg)
	server := api.NewServer(cfg, store, dispatcher)

	log.Printf("Starting HTTP server on port %s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, server.Router()); err != nil {
		log.Fatal(err)
	}
}
