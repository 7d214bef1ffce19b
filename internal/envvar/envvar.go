package envvar

const (
	// HomepriceEnv is the environment variable used to determine the environment
	HomepriceEnv = "HOMEPRICE_ENV"

	// HomepriceArtifactsDir is the environment variable used to override the artifacts directory
	HomepriceArtifactsDir = "HOMEPRICE_ARTIFACTS_DIR"

	// HomepriceServerHTTPPort is the environment variable used to determine the HTTP port
	HomepriceServerHTTPPort = "HOMEPRICE_SERVER_HTTP_PORT"

	// HomepriceServerGRPCPort is the environment variable used to determine the gRPC port
	HomepriceServerGRPCPort = "HOMEPRICE_SERVER_GRPC_PORT"
)
