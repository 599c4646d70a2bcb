package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Spaces_CreateSpace_FullMethodName           = "/ldr.Spaces/CreateSpace"
	Spaces_JoinSpace_FullMethodName             = "/ldr.Spaces/JoinSpace"
	Spaces_LeaveSpace_FullMethodName            = "/ldr.Spaces/LeaveSpace"
	Spaces_SwitchActiveSpace_FullMethodName     = "/ldr.Spaces/SwitchActiveSpace"
	Spaces_RenameSpace_FullMethodName           = "/ldr.Spaces/RenameSpace"
	Spaces_GetSpace_FullMethodName              = "/ldr.Spaces/GetSpace"
	Spaces_ListSpaces_FullMethodName            = "/ldr.Spaces/ListSpaces"
	Spaces_ListRecoverableSpaces_FullMethodName = "/ldr.Spaces/ListRecoverableSpaces"
	Spaces_RecoverSpace_FullMethodName          = "/ldr.Spaces/RecoverSpace"
	Spaces_ReconcileMemberships_FullMethodName  = "/ldr.Spaces/ReconcileMemberships"
	Spaces_BackfillMembersMeta_FullMethodName   = "/ldr.Spaces/BackfillMembersMeta"
	Spaces_GetSpaceSettings_FullMethodName      = "/ldr.Spaces/GetSpaceSettings"
	Spaces_UpdateSpaceSettings_FullMethodName   = "/ldr.Spaces/UpdateSpaceSettings"
)

// SpacesServer is the server API for the ldr.Spaces service.
type SpacesServer interface {
	CreateSpace(context.Context, *CreateSpaceRequest) (*CreateSpaceResponse, error)
	JoinSpace(context.Context, *JoinSpaceRequest) (*Space, error)
	LeaveSpace(context.Context, *SpaceRequest) (*Empty, error)
	SwitchActiveSpace(context.Context, *SpaceRequest) (*Empty, error)
	RenameSpace(context.Context, *RenameSpaceRequest) (*Empty, error)
	GetSpace(context.Context, *SpaceRequest) (*Space, error)
	ListSpaces(context.Context, *Empty) (*ListSpacesResponse, error)
	ListRecoverableSpaces(context.Context, *Empty) (*ListSpacesResponse, error)
	RecoverSpace(context.Context, *SpaceRequest) (*Empty, error)
	ReconcileMemberships(context.Context, *Empty) (*ReconcileMembershipsResponse, error)
	BackfillMembersMeta(context.Context, *SpaceRequest) (*Space, error)
	GetSpaceSettings(context.Context, *SpaceRequest) (*SpaceSettings, error)
	UpdateSpaceSettings(context.Context, *UpdateSpaceSettingsRequest) (*SpaceSettings, error)
}

// UnimplementedSpacesServer can be embedded to have forward compatible implementations.
type UnimplementedSpacesServer struct{}

func (UnimplementedSpacesServer) CreateSpace(context.Context, *CreateSpaceRequest) (*CreateSpaceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateSpace not implemented")
}
func (UnimplementedSpacesServer) JoinSpace(context.Context, *JoinSpaceRequest) (*Space, error) {
	return nil, status.Error(codes.Unimplemented, "method JoinSpace not implemented")
}
func (UnimplementedSpacesServer) LeaveSpace(context.Context, *SpaceRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method LeaveSpace not implemented")
}
func (UnimplementedSpacesServer) SwitchActiveSpace(context.Context, *SpaceRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SwitchActiveSpace not implemented")
}
func (UnimplementedSpacesServer) RenameSpace(context.Context, *RenameSpaceRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RenameSpace not implemented")
}
func (UnimplementedSpacesServer) GetSpace(context.Context, *SpaceRequest) (*Space, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSpace not implemented")
}
func (UnimplementedSpacesServer) ListSpaces(context.Context, *Empty) (*ListSpacesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSpaces not implemented")
}
func (UnimplementedSpacesServer) ListRecoverableSpaces(context.Context, *Empty) (*ListSpacesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecoverableSpaces not implemented")
}
func (UnimplementedSpacesServer) RecoverSpace(context.Context, *SpaceRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RecoverSpace not implemented")
}
func (UnimplementedSpacesServer) ReconcileMemberships(context.Context, *Empty) (*ReconcileMembershipsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReconcileMemberships not implemented")
}
func (UnimplementedSpacesServer) BackfillMembersMeta(context.Context, *SpaceRequest) (*Space, error) {
	return nil, status.Error(codes.Unimplemented, "method BackfillMembersMeta not implemented")
}
func (UnimplementedSpacesServer) GetSpaceSettings(context.Context, *SpaceRequest) (*SpaceSettings, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSpaceSettings not implemented")
}
func (UnimplementedSpacesServer) UpdateSpaceSettings(context.Context, *UpdateSpaceSettingsRequest) (*SpaceSettings, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateSpaceSettings not implemented")
}

var Spaces_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ldr.Spaces",
	HandlerType: (*SpacesServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateSpace", Handler: unary(Spaces_CreateSpace_FullMethodName, SpacesServer.CreateSpace)},
		{MethodName: "JoinSpace", Handler: unary(Spaces_JoinSpace_FullMethodName, SpacesServer.JoinSpace)},
		{MethodName: "LeaveSpace", Handler: unary(Spaces_LeaveSpace_FullMethodName, SpacesServer.LeaveSpace)},
		{MethodName: "SwitchActiveSpace", Handler: unary(Spaces_SwitchActiveSpace_FullMethodName, SpacesServer.SwitchActiveSpace)},
		{MethodName: "RenameSpace", Handler: unary(Spaces_RenameSpace_FullMethodName, SpacesServer.RenameSpace)},
		{MethodName: "GetSpace", Handler: unary(Spaces_GetSpace_FullMethodName, SpacesServer.GetSpace)},
		{MethodName: "ListSpaces", Handler: unary(Spaces_ListSpaces_FullMethodName, SpacesServer.ListSpaces)},
		{MethodName: "ListRecoverableSpaces", Handler: unary(Spaces_ListRecoverableSpaces_FullMethodName, SpacesServer.ListRecoverableSpaces)},
		{MethodName: "RecoverSpace", Handler: unary(Spaces_RecoverSpace_FullMethodName, SpacesServer.RecoverSpace)},
		{MethodName: "ReconcileMemberships", Handler: unary(Spaces_ReconcileMemberships_FullMethodName, SpacesServer.ReconcileMemberships)},
		{MethodName: "BackfillMembersMeta", Handler: unary(Spaces_BackfillMembersMeta_FullMethodName, SpacesServer.BackfillMembersMeta)},
		{MethodName: "GetSpaceSettings", Handler: unary(Spaces_GetSpaceSettings_FullMethodName, SpacesServer.GetSpaceSettings)},
		{MethodName: "UpdateSpaceSettings", Handler: unary(Spaces_UpdateSpaceSettings_FullMethodName, SpacesServer.UpdateSpaceSettings)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ldr/spaces.json",
}

func RegisterSpacesServer(s grpc.ServiceRegistrar, srv SpacesServer) {
	s.RegisterService(&Spaces_ServiceDesc, srv)
}

// SpacesClient is the client API for the ldr.Spaces service.
type SpacesClient interface {
	CreateSpace(ctx context.Context, in *CreateSpaceRequest, opts ...grpc.CallOption) (*CreateSpaceResponse, error)
	JoinSpace(ctx context.Context, in *JoinSpaceRequest, opts ...grpc.CallOption) (*Space, error)
	LeaveSpace(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Empty, error)
	SwitchActiveSpace(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Empty, error)
	RenameSpace(ctx context.Context, in *RenameSpaceRequest, opts ...grpc.CallOption) (*Empty, error)
	GetSpace(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Space, error)
	ListSpaces(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSpacesResponse, error)
	ListRecoverableSpaces(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSpacesResponse, error)
	RecoverSpace(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Empty, error)
	ReconcileMemberships(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ReconcileMembershipsResponse, error)
	BackfillMembersMeta(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Space, error)
	GetSpaceSettings(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*SpaceSettings, error)
	UpdateSpaceSettings(ctx context.Context, in *UpdateSpaceSettingsRequest, opts ...grpc.CallOption) (*SpaceSettings, error)
}

type spacesClient struct {
	cc grpc.ClientConnInterface
}

func NewSpacesClient(cc grpc.ClientConnInterface) SpacesClient {
	return &spacesClient{cc}
}

func (c *spacesClient) CreateSpace(ctx context.Context, in *CreateSpaceRequest, opts ...grpc.CallOption) (*CreateSpaceResponse, error) {
	return invoke[CreateSpaceResponse](ctx, c.cc, Spaces_CreateSpace_FullMethodName, in, opts)
}
func (c *spacesClient) JoinSpace(ctx context.Context, in *JoinSpaceRequest, opts ...grpc.CallOption) (*Space, error) {
	return invoke[Space](ctx, c.cc, Spaces_JoinSpace_FullMethodName, in, opts)
}
func (c *spacesClient) LeaveSpace(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Spaces_LeaveSpace_FullMethodName, in, opts)
}
func (c *spacesClient) SwitchActiveSpace(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Spaces_SwitchActiveSpace_FullMethodName, in, opts)
}
func (c *spacesClient) RenameSpace(ctx context.Context, in *RenameSpaceRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Spaces_RenameSpace_FullMethodName, in, opts)
}
func (c *spacesClient) GetSpace(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Space, error) {
	return invoke[Space](ctx, c.cc, Spaces_GetSpace_FullMethodName, in, opts)
}
func (c *spacesClient) ListSpaces(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSpacesResponse, error) {
	return invoke[ListSpacesResponse](ctx, c.cc, Spaces_ListSpaces_FullMethodName, in, opts)
}
func (c *spacesClient) ListRecoverableSpaces(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListSpacesResponse, error) {
	return invoke[ListSpacesResponse](ctx, c.cc, Spaces_ListRecoverableSpaces_FullMethodName, in, opts)
}
func (c *spacesClient) RecoverSpace(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Spaces_RecoverSpace_FullMethodName, in, opts)
}
func (c *spacesClient) ReconcileMemberships(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ReconcileMembershipsResponse, error) {
	return invoke[ReconcileMembershipsResponse](ctx, c.cc, Spaces_ReconcileMemberships_FullMethodName, in, opts)
}
func (c *spacesClient) BackfillMembersMeta(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*Space, error) {
	return invoke[Space](ctx, c.cc, Spaces_BackfillMembersMeta_FullMethodName, in, opts)
}
func (c *spacesClient) GetSpaceSettings(ctx context.Context, in *SpaceRequest, opts ...grpc.CallOption) (*SpaceSettings, error) {
	return invoke[SpaceSettings](ctx, c.cc, Spaces_GetSpaceSettings_FullMethodName, in, opts)
}
func (c *spacesClient) UpdateSpaceSettings(ctx context.Context, in *UpdateSpaceSettingsRequest, opts ...grpc.CallOption) (*SpaceSettings, error) {
	return invoke[SpaceSettings](ctx, c.cc, Spaces_UpdateSpaceSettings_FullMethodName, in, opts)
}
