// Package server exposes the compiler as a gRPC service whose schema is
// parsed at startup from the embedded compiler.proto.
package server

import (
	"context"
	"io"
	"log"
	"net"

	"github.com/funvibe/tackc/internal/backend"
	"github.com/funvibe/tackc/internal/cache"
	"github.com/funvibe/tackc/internal/config"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	reflectionpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
)

type Server struct {
	opts   *config.Options
	cache  *cache.Cache
	schema *Schema
	grpc   *grpc.Server
	logger *log.Logger
}

// New builds a server. c may be nil to compile without a cache; logger
// may be nil to discard request logs.
func New(opts *config.Options, c *cache.Cache, logger *log.Logger) (*Server, error) {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	schema, err := LoadSchema()
	if err != nil {
		return nil, err
	}

	s := &Server{opts: opts, cache: c, schema: schema, grpc: grpc.NewServer(), logger: logger}
	s.grpc.RegisterService(&grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*interface{})(nil),
		Methods: []grpc.MethodDesc{{
			MethodName: schema.Compile.GetName(),
			Handler:    compileHandler,
		}},
		Streams:  []grpc.StreamDesc{},
		Metadata: schema.File.GetName(),
	}, s)

	reflectionpb.RegisterServerReflectionServer(s.grpc, reflection.NewServerV1(reflection.ServerOptions{
		Services:           s.grpc,
		DescriptorResolver: schema.Files,
	}))
	return s, nil
}

func compileHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	s := srv.(*Server)
	in := dynamic.NewMessage(s.schema.Compile.GetInputType())
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return s.Compile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CompileMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.Compile(ctx, req.(*dynamic.Message))
	}
	return interceptor(ctx, in, info, handler)
}

// build runs one compilation; tests replace it.
var build = backend.Build

// Compile serves one request message and returns the response message.
// A compiler panic fails the request with Internal instead of taking the
// server down.
func (s *Server) Compile(ctx context.Context, req *dynamic.Message) (resp *dynamic.Message, err error) {
	source, _ := req.GetFieldByName("source").(string)
	file, _ := req.GetFieldByName("file").(string)
	emit, _ := req.GetFieldByName("emit").(string)

	opts := *s.opts
	if emit != "" {
		if _, err := backend.ForMode(emit); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		opts.Emit = emit
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("Internal error compiling %s: %v", file, r)
			resp, err = nil, status.Errorf(codes.Internal, "internal error: %v", r)
		}
	}()

	res, err := build(ctx, s.cache, source, file, &opts)
	if err != nil {
		s.logger.Printf("compile %s failed: %v", file, err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.logger.Printf("compiled %s (emit %s, %d errors, cached %t)", file, opts.Emit, len(res.Errors), res.Cached)

	resp = dynamic.NewMessage(s.schema.Compile.GetOutputType())
	resp.SetFieldByName("output", res.Output)
	resp.SetFieldByName("ok", res.OK())
	for _, e := range res.Errors {
		resp.AddRepeatedFieldByName("diagnostics", e.Error())
	}
	resp.SetFieldByName("build_id", res.BuildID)
	return resp, nil
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Printf("serving %s on %s", ServiceName, lis.Addr())
	return s.grpc.Serve(lis)
}

func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

func (s *Server) Stop() {
	s.grpc.GracefulStop()
}

// ServiceInfo lists the registered services, reflection included.
func (s *Server) ServiceInfo() map[string]grpc.ServiceInfo {
	return s.grpc.GetServiceInfo()
}
