package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "booking-wizard/api/scheduling/v1"
	"booking-wizard/internal/auth"
)

func (h *Handler) StartSession(ctx context.Context, _ *pb.Empty) (*pb.StartSessionResponse, error) {
	page, err := h.svc.Start(ctx)
	if err != nil {
		return nil, grpcError(err)
	}
	tok, err := auth.MakeToken(page.SessionID, h.secret)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &pb.StartSessionResponse{Token: tok, State: toState(page)}, nil
}

func (h *Handler) ListEventTypes(_ context.Context, _ *pb.Empty) (*pb.ListEventTypesResponse, error) {
	cat := h.svc.Catalog()
	host := cat.Profile()
	resp := &pb.ListEventTypesResponse{
		Host: &pb.Profile{
			Name:     host.Name,
			Email:    host.Email,
			Headline: host.Headline,
			Location: host.Location,
			Initials: host.Initials(),
		},
		Timezone: h.svc.TimezoneLabel(),
	}
	for _, e := range cat.Events() {
		resp.Events = append(resp.Events, &pb.EventType{
			Title:       e.Title,
			Description: e.Description,
			Durations:   e.Durations,
		})
	}
	return resp, nil
}
