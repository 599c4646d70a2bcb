package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Profiles_GetProfile_FullMethodName    = "/ldr.Profiles/GetProfile"
	Profiles_UpdateProfile_FullMethodName = "/ldr.Profiles/UpdateProfile"
	Profiles_UploadAvatar_FullMethodName  = "/ldr.Profiles/UploadAvatar"
)

// ProfilesServer is the server API for the ldr.Profiles service.
type ProfilesServer interface {
	GetProfile(context.Context, *Empty) (*Profile, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*Profile, error)
	UploadAvatar(context.Context, *UploadAvatarRequest) (*Profile, error)
}

// UnimplementedProfilesServer can be embedded to have forward compatible implementations.
type UnimplementedProfilesServer struct{}

func (UnimplementedProfilesServer) GetProfile(context.Context, *Empty) (*Profile, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedProfilesServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*Profile, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfile not implemented")
}
func (UnimplementedProfilesServer) UploadAvatar(context.Context, *UploadAvatarRequest) (*Profile, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadAvatar not implemented")
}

var Profiles_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ldr.Profiles",
	HandlerType: (*ProfilesServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProfile", Handler: unary(Profiles_GetProfile_FullMethodName, ProfilesServer.GetProfile)},
		{MethodName: "UpdateProfile", Handler: unary(Profiles_UpdateProfile_FullMethodName, ProfilesServer.UpdateProfile)},
		{MethodName: "UploadAvatar", Handler: unary(Profiles_UploadAvatar_FullMethodName, ProfilesServer.UploadAvatar)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ldr/profiles.json",
}

func RegisterProfilesServer(s grpc.ServiceRegistrar, srv ProfilesServer) {
	s.RegisterService(&Profiles_ServiceDesc, srv)
}

// ProfilesClient is the client API for the ldr.Profiles service.
type ProfilesClient interface {
	GetProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Profile, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	UploadAvatar(ctx context.Context, in *UploadAvatarRequest, opts ...grpc.CallOption) (*Profile, error)
}

type profilesClient struct {
	cc grpc.ClientConnInterface
}

func NewProfilesClient(cc grpc.ClientConnInterface) ProfilesClient {
	return &profilesClient{cc}
}

func (c *profilesClient) GetProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, Profiles_GetProfile_FullMethodName, in, opts)
}
func (c *profilesClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, Profiles_UpdateProfile_FullMethodName, in, opts)
}
func (c *profilesClient) UploadAvatar(ctx context.Context, in *UploadAvatarRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, Profiles_UploadAvatar_FullMethodName, in, opts)
}
