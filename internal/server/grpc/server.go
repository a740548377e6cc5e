// Package grpc serves the account and note operations over gRPC with a JSON
// codec.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/access"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address string
	users   *services.UserService
	notes   *services.NoteService
	gate    *access.Gate
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us *services.UserService, ns *services.NoteService, gate *access.Gate) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		notes:   ns,
		gate:    gate,
	}
}

// newServer builds the grpc.Server with auth, tracing and health checks.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			s.gate.UnaryInterceptor(
				RegisterMethod,
				LoginMethod,
				"/" + healthpb.Health_ServiceDesc.ServiceName + "/",
			),
		),
	)

	RegisterNoteServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

func (s *GRPCServer) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	u, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &RegisterResponse{Message: "User registered successfully", UserID: u.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	sess, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &LoginResponse{
		AccessToken: sess.AccessToken,
		TokenType:   sess.TokenType,
		UserID:      sess.UserID,
		ExpiresAt:   sess.ExpiresAt.UTC(),
	}, nil
}

func (s *GRPCServer) CreateNote(ctx context.Context, req *CreateNoteRequest) (*Note, error) {
	owner, err := access.OwnerID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	n, err := s.notes.Create(ctx, owner, req.Title, req.Content)
	if err != nil {
		return nil, toStatus(err)
	}
	return toNote(n), nil
}

func (s *GRPCServer) ListNotes(ctx context.Context, _ *ListNotesRequest) (*ListNotesResponse, error) {
	owner, err := access.OwnerID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	list, err := s.notes.ListByOwner(ctx, owner)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &ListNotesResponse{Notes: make([]*Note, 0, len(list))}
	for _, n := range list {
		resp.Notes = append(resp.Notes, toNote(n))
	}
	return resp, nil
}

func (s *GRPCServer) GetNote(ctx context.Context, req *GetNoteRequest) (*Note, error) {
	owner, err := access.OwnerID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	n, err := s.notes.GetByID(ctx, req.ID, owner)
	if err != nil {
		return nil, toStatus(err)
	}
	return toNote(n), nil
}

func (s *GRPCServer) UpdateNote(ctx context.Context, req *UpdateNoteRequest) (*Note, error) {
	owner, err := access.OwnerID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	n, err := s.notes.Update(ctx, req.ID, owner, req.Title, req.Content)
	if err != nil {
		return nil, toStatus(err)
	}
	return toNote(n), nil
}

func (s *GRPCServer) DeleteNote(ctx context.Context, req *DeleteNoteRequest) (*DeleteNoteResponse, error) {
	owner, err := access.OwnerID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	ok, err := s.notes.Delete(ctx, req.ID, owner)
	if err != nil {
		return nil, toStatus(err)
	}
	return &DeleteNoteResponse{Deleted: ok}, nil
}

func toNote(n *models.Note) *Note {
	return &Note{
		ID:        n.ID,
		UserID:    n.OwnerID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
	}
}
