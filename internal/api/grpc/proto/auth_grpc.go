package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Auth_SignUp_FullMethodName  = "/ldr.Auth/SignUp"
	Auth_SignIn_FullMethodName  = "/ldr.Auth/SignIn"
	Auth_Refresh_FullMethodName = "/ldr.Auth/Refresh"
	Auth_SignOut_FullMethodName = "/ldr.Auth/SignOut"
)

// AuthServer is the server API for the ldr.Auth service.
type AuthServer interface {
	SignUp(context.Context, *SignUpRequest) (*Session, error)
	SignIn(context.Context, *SignInRequest) (*Session, error)
	Refresh(context.Context, *RefreshRequest) (*Session, error)
	SignOut(context.Context, *SignOutRequest) (*Empty, error)
}

// UnimplementedAuthServer can be embedded to have forward compatible implementations.
type UnimplementedAuthServer struct{}

func (UnimplementedAuthServer) SignUp(context.Context, *SignUpRequest) (*Session, error) {
	return nil, status.Error(codes.Unimplemented, "method SignUp not implemented")
}
func (UnimplementedAuthServer) SignIn(context.Context, *SignInRequest) (*Session, error) {
	return nil, status.Error(codes.Unimplemented, "method SignIn not implemented")
}
func (UnimplementedAuthServer) Refresh(context.Context, *RefreshRequest) (*Session, error) {
	return nil, status.Error(codes.Unimplemented, "method Refresh not implemented")
}
func (UnimplementedAuthServer) SignOut(context.Context, *SignOutRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SignOut not implemented")
}

var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ldr.Auth",
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: unary(Auth_SignUp_FullMethodName, AuthServer.SignUp)},
		{MethodName: "SignIn", Handler: unary(Auth_SignIn_FullMethodName, AuthServer.SignIn)},
		{MethodName: "Refresh", Handler: unary(Auth_Refresh_FullMethodName, AuthServer.Refresh)},
		{MethodName: "SignOut", Handler: unary(Auth_SignOut_FullMethodName, AuthServer.SignOut)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ldr/auth.json",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

// AuthClient is the client API for the ldr.Auth service.
type AuthClient interface {
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*Session, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*Session, error)
	Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*Session, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*Empty, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc}
}

func (c *authClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, Auth_SignUp_FullMethodName, in, opts)
}
func (c *authClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, Auth_SignIn_FullMethodName, in, opts)
}
func (c *authClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, Auth_Refresh_FullMethodName, in, opts)
}
func (c *authClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_SignOut_FullMethodName, in, opts)
}
