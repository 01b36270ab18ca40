// Package grpcweb serves gRPC-Web (browser HTTP/1.1) requests by dispatching
// them straight to the registered service handlers.
package grpcweb

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"social-scheduler-api/internal/rpc"
)

const (
	maxBody = 4 << 20

	frameData    = 0x00
	frameTrailer = 0x80

	ctWeb  = "application/grpc-web"
	ctText = "application/grpc-web-text"
)

type method struct {
	srv  any
	desc grpc.MethodDesc
}

// Bridge translates gRPC-Web into direct handler calls. It implements
// grpc.ServiceRegistrar so the same services mount here and on the gRPC
// server.
type Bridge struct {
	methods     map[string]method
	interceptor grpc.UnaryServerInterceptor
	codec       rpc.Codec
	log         *slog.Logger
}

// New returns a bridge running every call through interceptor, which may be
// nil.
func New(interceptor grpc.UnaryServerInterceptor, log *slog.Logger) *Bridge {
	return &Bridge{methods: make(map[string]method), interceptor: interceptor, log: log}
}

func (b *Bridge) RegisterService(sd *grpc.ServiceDesc, ss any) {
	for _, m := range sd.Methods {
		b.methods["/"+sd.ServiceName+"/"+m.MethodName] = method{srv: ss, desc: m}
	}
}

// Handles reports whether path names a registered method.
func (b *Bridge) Handles(path string) bool {
	_, ok := b.methods[path]
	return ok
}

func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, ctWeb) {
		http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
		return
	}
	text := strings.HasPrefix(ct, ctText)
	out := &writer{w: w, text: text}
	if text {
		w.Header().Set("Content-Type", ctText+"+proto")
	} else {
		w.Header().Set("Content-Type", ctWeb+"+proto")
	}

	m, ok := b.methods[r.URL.Path]
	if !ok {
		out.trailer(status.Newf(codes.Unimplemented, "unknown method %s", r.URL.Path))
		return
	}

	payload, err := readFrame(r.Body, text)
	if err != nil {
		out.trailer(status.New(codes.InvalidArgument, err.Error()))
		return
	}

	ctx := metadata.NewIncomingContext(r.Context(), headerMD(r.Header))
	ctx = peer.NewContext(ctx, &peer.Peer{Addr: remoteAddr(r.RemoteAddr)})

	dec := func(v any) error { return b.codec.Unmarshal(payload, v) }
	resp, err := m.desc.Handler(m.srv, ctx, dec, b.interceptor)
	if err != nil {
		st := status.Convert(rpc.Status(err))
		b.log.Debug("grpc-web call failed", "method", r.URL.Path, "code", st.Code().String())
		out.trailer(st)
		return
	}
	data, err := b.codec.Marshal(resp)
	if err != nil {
		out.trailer(status.New(codes.Internal, "internal error"))
		return
	}
	out.frame(frameData, data)
	out.trailer(nil)
}

// readFrame returns the message of the single data frame in body:
// 1-byte flag + 4-byte big-endian length + protobuf.
func readFrame(body io.Reader, text bool) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(raw) > maxBody {
		return nil, fmt.Errorf("body too large")
	}
	if text {
		if raw, err = base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw))); err != nil {
			return nil, fmt.Errorf("bad base64 body")
		}
	}
	if len(raw) < 5 {
		return nil, fmt.Errorf("body too short")
	}
	if raw[0]&frameTrailer != 0 {
		return nil, fmt.Errorf("unexpected trailer frame")
	}
	n := binary.BigEndian.Uint32(raw[1:5])
	if uint64(n) > uint64(len(raw)-5) {
		return nil, fmt.Errorf("incomplete frame")
	}
	return raw[5 : 5+n], nil
}

// headers that describe the HTTP exchange rather than the call
var skipHeaders = map[string]bool{
	"content-type":   true,
	"content-length": true,
	"connection":     true,
	"cookie":         true,
	"accept":         true,
	"origin":         true,
}

func headerMD(h http.Header) metadata.MD {
	md := metadata.MD{}
	for k, vs := range h {
		k = strings.ToLower(k)
		if skipHeaders[k] || strings.HasPrefix(k, "sec-") {
			continue
		}
		md.Append(k, vs...)
	}
	return md
}

type remoteAddr string

func (remoteAddr) Network() string  { return "tcp" }
func (a remoteAddr) String() string { return string(a) }

type writer struct {
	w    http.ResponseWriter
	text bool
}

func (o *writer) frame(flag byte, data []byte) {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	if o.text {
		f = []byte(base64.StdEncoding.EncodeToString(f))
	}
	o.w.Write(f)
}

// trailer ends the response; a nil st means OK.
func (o *writer) trailer(st *status.Status) {
	var sb strings.Builder
	if st == nil {
		sb.WriteString("grpc-status:0\r\n")
	} else {
		fmt.Fprintf(&sb, "grpc-status:%d\r\ngrpc-message:%s\r\n", st.Code(), url.PathEscape(st.Message()))
		if len(st.Details()) > 0 {
			if raw, err := proto.Marshal(st.Proto()); err == nil {
				fmt.Fprintf(&sb, "grpc-status-details-bin:%s\r\n", base64.RawStdEncoding.EncodeToString(raw))
			}
		}
	}
	o.frame(frameTrailer, []byte(sb.String()))
}
