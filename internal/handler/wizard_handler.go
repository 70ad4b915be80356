package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "booking-wizard/api/scheduling/v1"
	"booking-wizard/internal/invite"
	"booking-wizard/internal/middleware"
)

func sid(ctx context.Context) (string, error) {
	id, ok := middleware.SessionID(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "no session")
	}
	return id, nil
}

func (h *Handler) GetState(ctx context.Context, _ *pb.Empty) (*pb.State, error) {
	id, err := sid(ctx)
	if err != nil {
		return nil, err
	}
	page, err := h.svc.Get(ctx, id)
	if err != nil {
		return nil, grpcError(err)
	}
	return toState(page), nil
}

func (h *Handler) Apply(ctx context.Context, req *pb.ApplyRequest) (*pb.State, error) {
	id, err := sid(ctx)
	if err != nil {
		return nil, err
	}
	if req.Op == "" {
		return nil, status.Error(codes.InvalidArgument, "op required")
	}
	action, err := toAction(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	page, err := h.svc.Apply(ctx, id, action)
	if err != nil {
		return nil, grpcError(err)
	}
	return toState(page), nil
}

func (h *Handler) ListSlots(ctx context.Context, _ *pb.Empty) (*pb.ListSlotsResponse, error) {
	id, err := sid(ctx)
	if err != nil {
		return nil, err
	}
	page, err := h.svc.Get(ctx, id)
	if err != nil {
		return nil, grpcError(err)
	}
	if page.Grid == nil {
		return nil, status.Error(codes.FailedPrecondition, "no calendar on step "+string(page.Step))
	}
	return toSlots(page), nil
}

func (h *Handler) DownloadInvite(ctx context.Context, _ *pb.Empty) (*pb.DownloadInviteResponse, error) {
	id, err := sid(ctx)
	if err != nil {
		return nil, err
	}
	data, err := h.svc.Invite(ctx, id)
	if err != nil {
		return nil, grpcError(err)
	}
	return &pb.DownloadInviteResponse{
		Filename:    invite.Filename,
		ContentType: invite.ContentType,
		Data:        data,
	}, nil
}
