package rpc

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// WorkerClient — gRPC клиент агента к оркестратору.
type WorkerClient struct {
	conn *grpc.ClientConn
}

// NewWorkerClient подключается к оркестратору по указанному адресу.
func NewWorkerClient(serverAddr string) (*WorkerClient, error) {
	conn, err := grpc.Dial(
		serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.CallContentSubtype(codecName),
			grpc.MaxCallRecvMsgSize(16*1024*1024),
			grpc.MaxCallSendMsgSize(16*1024*1024),
		),
	)
	if err != nil {
		return nil, err
	}

	return &WorkerClient{conn: conn}, nil
}

// Close закрывает соединение с сервером.
func (c *WorkerClient) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// NextJob запрашивает задание у оркестратора. Возвращает nil без
// ошибки, когда заданий нет.
func (c *WorkerClient) NextJob(agentID string) (*Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	job := new(Job)
	err := c.conn.Invoke(ctx, methodNextJob, &JobRequest{AgentID: agentID}, job)
	if err != nil {
		st, ok := status.FromError(err)
		if ok && st.Code() == codes.NotFound {
			return nil, nil
		}
		log.Printf("Агент %s: ошибка получения задания: %v", agentID, err)
		return nil, err
	}

	return job, nil
}

// Complete отправляет результат задания оркестратору.
func (c *WorkerClient) Complete(res *JobResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ack := new(Ack)
	if err := c.conn.Invoke(ctx, methodComplete, res, ack); err != nil {
		log.Printf("Ошибка отправки результата для задания %s: %v", res.ID, err)
		return err
	}

	if !ack.Success {
		return status.Error(codes.Internal, ack.ErrorMessage)
	}
	return nil
}
