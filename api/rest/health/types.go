package health

import "context"

type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Mensaje string `json:"mensaje"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// anything whose reachability gates readiness, the vector index in practice
type Pinger interface {
	Ping(ctx context.Context) error
}
