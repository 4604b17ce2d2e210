package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// JobRequest — запрос задания агентом.
type JobRequest struct {
	AgentID string `json:"agent_id"`
}

// Job — задание, выданное агенту на исполнение.
type Job struct {
	ID        string         `json:"id"`
	Op        string         `json:"op"`
	Payload   map[string]any `json:"payload,omitempty"`
	TimeoutMs int64          `json:"timeout_ms"`
}

// JobResult — итог исполнения задания агентом. Stopped означает, что
// агент прервал вычисление по таймауту самого задания.
type JobResult struct {
	ID           string `json:"id"`
	Value        any    `json:"value,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Stopped      bool   `json:"stopped,omitempty"`
}

type Ack struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// WorkerServer — контракт стороны оркестратора: выдача заданий
// и прием результатов.
type WorkerServer interface {
	NextJob(ctx context.Context, req *JobRequest) (*Job, error)
	Complete(ctx context.Context, res *JobResult) (*Ack, error)
}

const (
	serviceName    = "symcalc.Worker"
	methodNextJob  = "/symcalc.Worker/NextJob"
	methodComplete = "/symcalc.Worker/Complete"
)

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*WorkerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NextJob", Handler: nextJobHandler},
		{MethodName: "Complete", Handler: completeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/rpc/worker.go",
}

func nextJobHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(JobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WorkerServer).NextJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodNextJob}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WorkerServer).NextJob(ctx, req.(*JobRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func completeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(JobResult)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WorkerServer).Complete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodComplete}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WorkerServer).Complete(ctx, req.(*JobResult))
	}
	return interceptor(ctx, in, info, handler)
}
