package grpcweb

import (
	"bytes"
	"context"
	"encoding/binary"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	pb "booking-wizard/api/scheduling/v1"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/handler"
	"booking-wizard/internal/logging"
	"booking-wizard/internal/middleware"
	"booking-wizard/internal/scheduler"
	"booking-wizard/internal/session"
)

func newBridge(t *testing.T) http.Handler {
	t.Helper()
	svc := scheduler.New(scheduler.Options{
		Sources:  calendar.DefaultSources(1, 0.7),
		Sessions: session.NewMemoryStore(time.Hour),
	})
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ForceServerCodec(pb.Codec{}), grpc.UnaryInterceptor(middleware.Session("k")))
	pb.RegisterSchedulingServiceServer(srv, handler.New(svc, "k"))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewWithConn(conn, logging.Discard()).Handler()
}

// frames splits a grpc-web response body into its data and trailer payloads.
func frames(t *testing.T, body []byte) (data []byte, trailer string) {
	t.Helper()
	for len(body) >= 5 {
		n := binary.BigEndian.Uint32(body[1:5])
		require.LessOrEqual(t, int(n)+5, len(body))
		chunk := body[5 : 5+n]
		if body[0]&0x80 != 0 {
			trailer = string(chunk)
		} else {
			data = chunk
		}
		body = body[5+n:]
	}
	return data, trailer
}

func post(h http.Handler, path, ct string, body []byte, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", ct)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBridgeForwards(t *testing.T) {
	h := newBridge(t)
	rec := post(h, pb.SchedulingService_ListEventTypes_FullMethodName, "application/grpc-web+proto", frame(0, nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data, trailer := frames(t, rec.Body.Bytes())
	assert.Equal(t, "grpc-status:0\r\n", trailer)
	var resp pb.ListEventTypesResponse
	require.NoError(t, resp.Unmarshal(data))
	assert.Len(t, resp.Events, 5)
	assert.Equal(t, "Sanskar Yadav", resp.Host.Name)
}

func TestBridgeSessionFlow(t *testing.T) {
	h := newBridge(t)
	rec := post(h, pb.SchedulingService_StartSession_FullMethodName, "application/grpc-web", frame(0, nil), nil)
	data, _ := frames(t, rec.Body.Bytes())
	var start pb.StartSessionResponse
	require.NoError(t, start.Unmarshal(data))
	require.NotEmpty(t, start.Token)

	req := (&pb.ApplyRequest{Op: "select_event", Event: "Product Demo"}).Marshal()
	rec = post(h, pb.SchedulingService_Apply_FullMethodName, "application/grpc-web+proto", frame(0, req),
		map[string]string{"Authorization": "Bearer " + start.Token})
	data, trailer := frames(t, rec.Body.Bytes())
	assert.Equal(t, "grpc-status:0\r\n", trailer)
	var st pb.State
	require.NoError(t, st.Unmarshal(data))
	assert.Equal(t, "calendar", st.Step)
	assert.Equal(t, "30m", st.EventDuration)
}

func TestBridgeErrors(t *testing.T) {
	h := newBridge(t)

	rec := post(h, pb.SchedulingService_GetState_FullMethodName, "application/grpc-web+proto", frame(0, nil), nil)
	_, trailer := frames(t, rec.Body.Bytes())
	assert.Contains(t, trailer, "grpc-status:16")

	rec = post(h, pb.SchedulingService_GetState_FullMethodName, "application/grpc-web+proto", []byte{0, 0}, nil)
	_, trailer = frames(t, rec.Body.Bytes())
	assert.Contains(t, trailer, "grpc-status:3")

	rec = post(h, pb.SchedulingService_GetState_FullMethodName, "application/grpc-web+proto", []byte{0, 0, 0, 0, 9, 1}, nil)
	_, trailer = frames(t, rec.Body.Bytes())
	assert.Contains(t, trailer, "incomplete%20frame")

	rec = post(h, pb.SchedulingService_GetState_FullMethodName, "application/json", frame(0, nil), nil)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

// recordingConn keeps the outgoing metadata of the last call.
type recordingConn struct{ md metadata.MD }

func (c *recordingConn) Invoke(ctx context.Context, _ string, _, _ any, _ ...grpc.CallOption) error {
	c.md, _ = metadata.FromOutgoingContext(ctx)
	return nil
}

func (c *recordingConn) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, nil
}

func TestBridgeForwardsClientAddress(t *testing.T) {
	conn := &recordingConn{}
	h := chimw.RealIP(NewWithConn(conn, logging.Discard()).Handler())

	tests := []struct {
		name string
		hdr  map[string]string
		want string
	}{
		{"direct", nil, "192.0.2.1"},
		{"x-forwarded-for", map[string]string{"X-Forwarded-For": "203.0.113.9"}, "203.0.113.9"},
		{"x-real-ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "198.51.100.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, pb.SchedulingService_Apply_FullMethodName, "application/grpc-web+proto", frame(0, nil), tt.hdr)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{tt.want}, conn.md.Get("x-forwarded-for"))
		})
	}
}
