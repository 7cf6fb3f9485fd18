package handlers

import (
	"context"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/records"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler exposes records.Service over HTTP.
type Handler struct {
	svc     *records.Service
	store   Pinger
	version string
}

func New(svc *records.Service, store Pinger, version string) *Handler {
	return &Handler{svc: svc, store: store, version: version}
}
