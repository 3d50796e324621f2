package grpc

// proto.go defines the gRPC server interface derived from
// creditscore/scoring/v1/scoring.proto. This file serves as a stand-in for
// buf-generated code; the service is exposed over the JSON codec, and the
// request/response messages are the application DTOs. Once `buf generate`
// is run, replace this file with the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/creditscorepro/scoring-service/internal/application/dto"
)

// Wire messages. These alias the application DTOs so the JSON codec carries
// the same field names as the REST surface.
type (
	AnalyzeRequest   = dto.AnalyzeRequest
	AnalyzeResponse  = dto.AnalysisResponse
	PaymentRequest   = dto.PaymentRequest
	PaymentResponse  = dto.PaymentResponse
	CapacityRequest  = dto.CapacityRequest
	CapacityResponse = dto.CapacityResponse
	ScheduleRequest  = dto.ScheduleRequest
	ScheduleResponse = dto.ScheduleResponse
)

// ScoringServiceServer is the server API for ScoringService.
// It mirrors the proto interface from creditscore.scoring.v1.ScoringService.
type ScoringServiceServer interface {
	Analyze(context.Context, *AnalyzeRequest) (*AnalyzeResponse, error)
	ComputePayment(context.Context, *PaymentRequest) (*PaymentResponse, error)
	ComputeCapacity(context.Context, *CapacityRequest) (*CapacityResponse, error)
	GetAmortizationSchedule(context.Context, *ScheduleRequest) (*ScheduleResponse, error)
	mustEmbedUnimplementedScoringServiceServer()
}

// UnimplementedScoringServiceServer provides forward-compatible default implementations.
type UnimplementedScoringServiceServer struct{}

func (UnimplementedScoringServiceServer) Analyze(context.Context, *AnalyzeRequest) (*AnalyzeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Analyze not implemented")
}
func (UnimplementedScoringServiceServer) ComputePayment(context.Context, *PaymentRequest) (*PaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ComputePayment not implemented")
}
func (UnimplementedScoringServiceServer) ComputeCapacity(context.Context, *CapacityRequest) (*CapacityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ComputeCapacity not implemented")
}
func (UnimplementedScoringServiceServer) GetAmortizationSchedule(context.Context, *ScheduleRequest) (*ScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAmortizationSchedule not implemented")
}
func (UnimplementedScoringServiceServer) mustEmbedUnimplementedScoringServiceServer() {}

// RegisterScoringServiceServer registers the ScoringServiceServer with the gRPC server.
func RegisterScoringServiceServer(s *grpclib.Server, srv ScoringServiceServer) {
	s.RegisterService(&_ScoringService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _ScoringService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "creditscore.scoring.v1.ScoringService",
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Analyze", Handler: _ScoringService_Analyze_Handler},                                 //nolint:revive // gRPC handler registration
		{MethodName: "ComputePayment", Handler: _ScoringService_ComputePayment_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "ComputeCapacity", Handler: _ScoringService_ComputeCapacity_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "GetAmortizationSchedule", Handler: _ScoringService_GetAmortizationSchedule_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _ScoringService_Analyze_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AnalyzeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).Analyze(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/creditscore.scoring.v1.ScoringService/Analyze",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).Analyze(ctx, req.(*AnalyzeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScoringService_ComputePayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(PaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).ComputePayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/creditscore.scoring.v1.ScoringService/ComputePayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).ComputePayment(ctx, req.(*PaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScoringService_ComputeCapacity_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CapacityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).ComputeCapacity(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/creditscore.scoring.v1.ScoringService/ComputeCapacity",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).ComputeCapacity(ctx, req.(*CapacityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ScoringService_GetAmortizationSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).GetAmortizationSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/creditscore.scoring.v1.ScoringService/GetAmortizationSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).GetAmortizationSchedule(ctx, req.(*ScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}
