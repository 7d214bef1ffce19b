// Package grpc exposes the estimator over gRPC. Messages are protobuf
// well-known types, so no generated code is needed.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ekisa-team/homeprice/internal/estimator"
	"github.com/ekisa-team/homeprice/internal/regression"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "homeprice.v1.Estimator"

// Full method names.
const (
	GetLocationNamesMethod = "/" + ServiceName + "/GetLocationNames"
	PredictHomePriceMethod = "/" + ServiceName + "/PredictHomePrice"
)

// Estimator is the part of estimator.Estimator the service uses.
type Estimator interface {
	Loaded() bool
	LocationNames() ([]string, error)
	EstimatedPrice(ctx context.Context, location string, sqft, bhk, bath float64) (float64, error)
}

// EstimatorServer is the server API for the homeprice.v1.Estimator service.
type EstimatorServer interface {
	GetLocationNames(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	PredictHomePrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Service implements EstimatorServer.
type Service struct {
	estimator Estimator
}

// NewService creates a new Service instance.
func NewService(est Estimator) *Service {
	return &Service{estimator: est}
}

// GetLocationNames returns the known locations as a list of strings.
func (s *Service) GetLocationNames(_ context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	names, err := s.estimator.LocationNames()
	if err != nil {
		return nil, toStatus(err)
	}

	values := make([]*structpb.Value, len(names))
	for i, name := range names {
		values[i] = structpb.NewStringValue(name)
	}

	return &structpb.ListValue{Values: values}, nil
}

// PredictHomePrice expects the fields location, total_sqft, bhk and bath and
// returns {"estimated_price": n}.
func (s *Service) PredictHomePrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	locValue, ok := fields["location"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "missing field: location")
	}
	loc, ok := locValue.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "location must be a string")
	}

	sqft, err := numberField(fields, "total_sqft")
	if err != nil {
		return nil, err
	}
	bhk, err := numberField(fields, "bhk")
	if err != nil {
		return nil, err
	}
	bath, err := numberField(fields, "bath")
	if err != nil {
		return nil, err
	}

	price, err := s.estimator.EstimatedPrice(ctx, loc.StringValue, sqft, bhk, bath)
	if err != nil {
		return nil, toStatus(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"estimated_price": structpb.NewNumberValue(price),
	}}, nil
}

func numberField(fields map[string]*structpb.Value, name string) (float64, error) {
	v, ok := fields[name]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "missing field: %s", name)
	}

	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || math.IsNaN(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a finite number", name)
	}

	return n.NumberValue, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, estimator.ErrNotInitialized):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, regression.ErrNonFinite):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, fmt.Sprintf("failed to estimate price: %v", err))
	}
}

// RegisterEstimatorServer registers srv on s.
func RegisterEstimatorServer(s grpc.ServiceRegistrar, srv EstimatorServer) {
	s.RegisterService(&estimatorServiceDesc, srv)
}

var estimatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EstimatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetLocationNames", Handler: getLocationNamesHandler},
		{MethodName: "PredictHomePrice", Handler: predictHomePriceHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "homeprice/v1/estimator.proto",
}

func getLocationNamesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EstimatorServer).GetLocationNames(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetLocationNamesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EstimatorServer).GetLocationNames(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func predictHomePriceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EstimatorServer).PredictHomePrice(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PredictHomePriceMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EstimatorServer).PredictHomePrice(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
