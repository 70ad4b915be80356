package handler

import (
	pb "booking-wizard/api/scheduling/v1"
	"booking-wizard/internal/scheduler"
)

type Handler struct {
	pb.UnimplementedSchedulingServiceServer
	svc    *scheduler.Service
	secret string
}

func New(svc *scheduler.Service, secret string) *Handler {
	return &Handler{svc: svc, secret: secret}
}
