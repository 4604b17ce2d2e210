package rpc

import (
	"context"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"symcalc/internal/queue"
)

// QueueServer отдает агентам задания из очереди и записывает их итоги.
type QueueServer struct {
	queue *queue.Queue
}

func NewQueueServer(q *queue.Queue) *QueueServer {
	return &QueueServer{queue: q}
}

// NextJob возвращает агенту самое старое ожидающее задание.
func (s *QueueServer) NextJob(ctx context.Context, req *JobRequest) (*Job, error) {
	job, ok := s.queue.Next(req.AgentID)
	if !ok {
		return nil, status.Error(codes.NotFound, "no jobs available")
	}

	return &Job{
		ID:        job.ID,
		Op:        job.Op,
		Payload:   job.Payload,
		TimeoutMs: job.Timeout.Milliseconds(),
	}, nil
}

// Complete принимает результат задания от агента.
func (s *QueueServer) Complete(ctx context.Context, res *JobResult) (*Ack, error) {
	var err error
	switch {
	case res.Stopped:
		err = s.queue.Stop(res.ID, res.ErrorMessage)
	case res.ErrorMessage != "":
		err = s.queue.Fail(res.ID, res.ErrorMessage)
	default:
		err = s.queue.Complete(res.ID, res.Value)
	}

	if err != nil {
		log.Printf("Ошибка при обработке результата задания %s: %v", res.ID, err)
		return &Ack{Success: false, ErrorMessage: err.Error()}, nil
	}
	return &Ack{Success: true}, nil
}

// StartServer запускает gRPC сервер для агентов.
func StartServer(address string, q *queue.Queue) error {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	log.Printf("gRPC сервер запущен на %s", address)
	return Serve(lis, q)
}

// Serve обслуживает агентов на готовом листенере.
func Serve(lis net.Listener, q *queue.Queue) error {
	opts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(16 * 1024 * 1024),
		grpc.MaxSendMsgSize(16 * 1024 * 1024),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     time.Minute,
			MaxConnectionAge:      5 * time.Minute,
			MaxConnectionAgeGrace: 20 * time.Second,
			Time:                  20 * time.Second,
			Timeout:               10 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	}

	s := grpc.NewServer(opts...)
	s.RegisterService(&serviceDesc, NewQueueServer(q))

	return s.Serve(lis)
}
