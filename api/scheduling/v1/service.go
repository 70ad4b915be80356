package schedulingv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "scheduling.v1.SchedulingService"

const (
	SchedulingService_StartSession_FullMethodName   = "/scheduling.v1.SchedulingService/StartSession"
	SchedulingService_ListEventTypes_FullMethodName = "/scheduling.v1.SchedulingService/ListEventTypes"
	SchedulingService_GetState_FullMethodName       = "/scheduling.v1.SchedulingService/GetState"
	SchedulingService_Apply_FullMethodName          = "/scheduling.v1.SchedulingService/Apply"
	SchedulingService_ListSlots_FullMethodName      = "/scheduling.v1.SchedulingService/ListSlots"
	SchedulingService_DownloadInvite_FullMethodName = "/scheduling.v1.SchedulingService/DownloadInvite"
)

type SchedulingServiceServer interface {
	StartSession(context.Context, *Empty) (*StartSessionResponse, error)
	ListEventTypes(context.Context, *Empty) (*ListEventTypesResponse, error)
	GetState(context.Context, *Empty) (*State, error)
	Apply(context.Context, *ApplyRequest) (*State, error)
	ListSlots(context.Context, *Empty) (*ListSlotsResponse, error)
	DownloadInvite(context.Context, *Empty) (*DownloadInviteResponse, error)
}

// UnimplementedSchedulingServiceServer can be embedded to stay forward compatible.
type UnimplementedSchedulingServiceServer struct{}

func (UnimplementedSchedulingServiceServer) StartSession(context.Context, *Empty) (*StartSessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartSession not implemented")
}
func (UnimplementedSchedulingServiceServer) ListEventTypes(context.Context, *Empty) (*ListEventTypesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEventTypes not implemented")
}
func (UnimplementedSchedulingServiceServer) GetState(context.Context, *Empty) (*State, error) {
	return nil, status.Error(codes.Unimplemented, "method GetState not implemented")
}
func (UnimplementedSchedulingServiceServer) Apply(context.Context, *ApplyRequest) (*State, error) {
	return nil, status.Error(codes.Unimplemented, "method Apply not implemented")
}
func (UnimplementedSchedulingServiceServer) ListSlots(context.Context, *Empty) (*ListSlotsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSlots not implemented")
}
func (UnimplementedSchedulingServiceServer) DownloadInvite(context.Context, *Empty) (*DownloadInviteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DownloadInvite not implemented")
}

// unary adapts one service method to grpc.MethodHandler.
func unary[Req any, PReq interface {
	*Req
	Message
}](fullMethod string, call func(SchedulingServiceServer, context.Context, PReq) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SchedulingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SchedulingServiceServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var SchedulingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SchedulingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "StartSession",
			Handler: unary(SchedulingService_StartSession_FullMethodName,
				func(s SchedulingServiceServer, ctx context.Context, in *Empty) (any, error) {
					return s.StartSession(ctx, in)
				}),
		},
		{
			MethodName: "ListEventTypes",
			Handler: unary(SchedulingService_ListEventTypes_FullMethodName,
				func(s SchedulingServiceServer, ctx context.Context, in *Empty) (any, error) {
					return s.ListEventTypes(ctx, in)
				}),
		},
		{
			MethodName: "GetState",
			Handler: unary(SchedulingService_GetState_FullMethodName,
				func(s SchedulingServiceServer, ctx context.Context, in *Empty) (any, error) {
					return s.GetState(ctx, in)
				}),
		},
		{
			MethodName: "Apply",
			Handler: unary(SchedulingService_Apply_FullMethodName,
				func(s SchedulingServiceServer, ctx context.Context, in *ApplyRequest) (any, error) {
					return s.Apply(ctx, in)
				}),
		},
		{
			MethodName: "ListSlots",
			Handler: unary(SchedulingService_ListSlots_FullMethodName,
				func(s SchedulingServiceServer, ctx context.Context, in *Empty) (any, error) {
					return s.ListSlots(ctx, in)
				}),
		},
		{
			MethodName: "DownloadInvite",
			Handler: unary(SchedulingService_DownloadInvite_FullMethodName,
				func(s SchedulingServiceServer, ctx context.Context, in *Empty) (any, error) {
					return s.DownloadInvite(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "scheduling.proto",
}

func RegisterSchedulingServiceServer(s grpc.ServiceRegistrar, srv SchedulingServiceServer) {
	s.RegisterService(&SchedulingService_ServiceDesc, srv)
}

type SchedulingServiceClient interface {
	StartSession(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StartSessionResponse, error)
	ListEventTypes(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListEventTypesResponse, error)
	GetState(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*State, error)
	Apply(ctx context.Context, in *ApplyRequest, opts ...grpc.CallOption) (*State, error)
	ListSlots(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSlotsResponse, error)
	DownloadInvite(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*DownloadInviteResponse, error)
}

type schedulingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSchedulingServiceClient(cc grpc.ClientConnInterface) SchedulingServiceClient {
	return &schedulingServiceClient{cc}
}

func invoke[Resp any, PResp interface {
	*Resp
	Message
}](ctx context.Context, cc grpc.ClientConnInterface, method string, in Message, opts []grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *schedulingServiceClient) StartSession(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StartSessionResponse, error) {
	return invoke[StartSessionResponse](ctx, c.cc, SchedulingService_StartSession_FullMethodName, in, opts)
}

func (c *schedulingServiceClient) ListEventTypes(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListEventTypesResponse, error) {
	return invoke[ListEventTypesResponse](ctx, c.cc, SchedulingService_ListEventTypes_FullMethodName, in, opts)
}

func (c *schedulingServiceClient) GetState(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*State, error) {
	return invoke[State](ctx, c.cc, SchedulingService_GetState_FullMethodName, in, opts)
}

func (c *schedulingServiceClient) Apply(ctx context.Context, in *ApplyRequest, opts ...grpc.CallOption) (*State, error) {
	return invoke[State](ctx, c.cc, SchedulingService_Apply_FullMethodName, in, opts)
}

func (c *schedulingServiceClient) ListSlots(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSlotsResponse, error) {
	return invoke[ListSlotsResponse](ctx, c.cc, SchedulingService_ListSlots_FullMethodName, in, opts)
}

func (c *schedulingServiceClient) DownloadInvite(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*DownloadInviteResponse, error) {
	return invoke[DownloadInviteResponse](ctx, c.cc, SchedulingService_DownloadInvite_FullMethodName, in, opts)
}
