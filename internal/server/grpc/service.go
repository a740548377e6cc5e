package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "notekeeper.NoteService"

	RegisterMethod   = "/" + ServiceName + "/Register"
	LoginMethod      = "/" + ServiceName + "/Login"
	CreateNoteMethod = "/" + ServiceName + "/CreateNote"
	ListNotesMethod  = "/" + ServiceName + "/ListNotes"
	GetNoteMethod    = "/" + ServiceName + "/GetNote"
	UpdateNoteMethod = "/" + ServiceName + "/UpdateNote"
	DeleteNoteMethod = "/" + ServiceName + "/DeleteNote"
)

// NoteServiceServer is the server API for notekeeper.NoteService.
type NoteServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	CreateNote(context.Context, *CreateNoteRequest) (*Note, error)
	ListNotes(context.Context, *ListNotesRequest) (*ListNotesResponse, error)
	GetNote(context.Context, *GetNoteRequest) (*Note, error)
	UpdateNote(context.Context, *UpdateNoteRequest) (*Note, error)
	DeleteNote(context.Context, *DeleteNoteRequest) (*DeleteNoteResponse, error)
}

// unaryHandler adapts a typed method to grpc.MethodDesc.Handler.
func unaryHandler[Req, Resp any](fullMethod string, call func(NoteServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(NoteServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(NoteServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// NoteServiceDesc describes notekeeper.NoteService for grpc.Server.RegisterService.
var NoteServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NoteServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(RegisterMethod, NoteServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(LoginMethod, NoteServiceServer.Login)},
		{MethodName: "CreateNote", Handler: unaryHandler(CreateNoteMethod, NoteServiceServer.CreateNote)},
		{MethodName: "ListNotes", Handler: unaryHandler(ListNotesMethod, NoteServiceServer.ListNotes)},
		{MethodName: "GetNote", Handler: unaryHandler(GetNoteMethod, NoteServiceServer.GetNote)},
		{MethodName: "UpdateNote", Handler: unaryHandler(UpdateNoteMethod, NoteServiceServer.UpdateNote)},
		{MethodName: "DeleteNote", Handler: unaryHandler(DeleteNoteMethod, NoteServiceServer.DeleteNote)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notekeeper.proto",
}

// RegisterNoteServiceServer registers srv on s.
func RegisterNoteServiceServer(s grpc.ServiceRegistrar, srv NoteServiceServer) {
	s.RegisterService(&NoteServiceDesc, srv)
}
