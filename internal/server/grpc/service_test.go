package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ekisa-team/homeprice/internal/artifact"
	"github.com/ekisa-team/homeprice/internal/estimator"
	"github.com/ekisa-team/homeprice/internal/regression"
)

var testColumns = []string{"total_sqft", "bath", "bhk", "indira nagar", "whitefield"}

func newEstimator(t *testing.T, loaded bool) *estimator.Estimator {
	t.Helper()
	est, err := estimator.New()
	require.NoError(t, err)

	if loaded {
		model := regression.NewLinearRegression([]float64{0.1, 2, 3, 50, 10}, -5, nil)
		a, err := artifact.New(testColumns, model)
		require.NoError(t, err)
		est.Swap(a)
	}
	return est
}

// dial starts a server on an in-memory listener and returns a client conn.
func dial(t *testing.T, est Estimator) (*grpc.ClientConn, *Server) {
	t.Helper()

	ln := bufconn.Listen(1 << 20)
	srv := NewServer(0, est)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return ln.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		assert.NoError(t, <-done)
	})

	return conn, srv
}

func TestService_GetLocationNames(t *testing.T) {
	conn, _ := dial(t, newEstimator(t, true))

	var resp structpb.ListValue
	err := conn.Invoke(context.Background(), GetLocationNamesMethod, &emptypb.Empty{}, &resp)
	require.NoError(t, err)

	assert.Equal(t, []any{"indira nagar", "whitefield"}, resp.AsSlice())
}

func TestService_PredictHomePrice(t *testing.T) {
	conn, _ := dial(t, newEstimator(t, true))

	req, err := structpb.NewStruct(map[string]any{
		"location":   "Indira Nagar",
		"total_sqft": 1000,
		"bhk":        2,
		"bath":       3,
	})
	require.NoError(t, err)

	var resp structpb.Struct
	require.NoError(t, conn.Invoke(context.Background(), PredictHomePriceMethod, req, &resp))

	// 0.1*1000 + 2*bath + 3*bhk + 50 - 5
	assert.Equal(t, 157.0, resp.GetFields()["estimated_price"].GetNumberValue())
}

func TestService_PredictHomePrice_InvalidArgument(t *testing.T) {
	conn, _ := dial(t, newEstimator(t, true))

	tests := map[string]map[string]any{
		"missing location":  {"total_sqft": 1000, "bhk": 2, "bath": 2},
		"location not text": {"location": 3, "total_sqft": 1000, "bhk": 2, "bath": 2},
		"missing bhk":       {"location": "x", "total_sqft": 1000, "bath": 2},
		"sqft not number":   {"location": "x", "total_sqft": "big", "bhk": 2, "bath": 2},
	}

	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := structpb.NewStruct(fields)
			require.NoError(t, err)

			var resp structpb.Struct
			err = conn.Invoke(context.Background(), PredictHomePriceMethod, req, &resp)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestService_NotLoaded(t *testing.T) {
	conn, _ := dial(t, newEstimator(t, false))

	var list structpb.ListValue
	err := conn.Invoke(context.Background(), GetLocationNamesMethod, &emptypb.Empty{}, &list)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestServer_Health(t *testing.T) {
	est := newEstimator(t, false)
	conn, srv := dial(t, est)
	client := healthpb.NewHealthClient(conn)
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	srv.SetServing(true)

	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
