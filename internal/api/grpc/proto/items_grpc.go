package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Items_CreateItem_FullMethodName = "/ldr.Items/CreateItem"
	Items_GetItem_FullMethodName    = "/ldr.Items/GetItem"
	Items_ListItems_FullMethodName  = "/ldr.Items/ListItems"
	Items_UpdateItem_FullMethodName = "/ldr.Items/UpdateItem"
	Items_DeleteItem_FullMethodName = "/ldr.Items/DeleteItem"
	Items_Watch_FullMethodName      = "/ldr.Items/Watch"
)

// ItemsServer is the server API for the ldr.Items service.
type ItemsServer interface {
	CreateItem(context.Context, *CreateItemRequest) (*Item, error)
	GetItem(context.Context, *ItemRequest) (*Item, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	UpdateItem(context.Context, *UpdateItemRequest) (*Item, error)
	DeleteItem(context.Context, *ItemRequest) (*Empty, error)
	Watch(*WatchRequest, grpc.ServerStreamingServer[Event]) error
}

// UnimplementedItemsServer can be embedded to have forward compatible implementations.
type UnimplementedItemsServer struct{}

func (UnimplementedItemsServer) CreateItem(context.Context, *CreateItemRequest) (*Item, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateItem not implemented")
}
func (UnimplementedItemsServer) GetItem(context.Context, *ItemRequest) (*Item, error) {
	return nil, status.Error(codes.Unimplemented, "method GetItem not implemented")
}
func (UnimplementedItemsServer) ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListItems not implemented")
}
func (UnimplementedItemsServer) UpdateItem(context.Context, *UpdateItemRequest) (*Item, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateItem not implemented")
}
func (UnimplementedItemsServer) DeleteItem(context.Context, *ItemRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteItem not implemented")
}
func (UnimplementedItemsServer) Watch(*WatchRequest, grpc.ServerStreamingServer[Event]) error {
	return status.Error(codes.Unimplemented, "method Watch not implemented")
}

func _Items_Watch_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ItemsServer).Watch(m, &grpc.GenericServerStream[WatchRequest, Event]{ServerStream: stream})
}

var Items_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ldr.Items",
	HandlerType: (*ItemsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateItem", Handler: unary(Items_CreateItem_FullMethodName, ItemsServer.CreateItem)},
		{MethodName: "GetItem", Handler: unary(Items_GetItem_FullMethodName, ItemsServer.GetItem)},
		{MethodName: "ListItems", Handler: unary(Items_ListItems_FullMethodName, ItemsServer.ListItems)},
		{MethodName: "UpdateItem", Handler: unary(Items_UpdateItem_FullMethodName, ItemsServer.UpdateItem)},
		{MethodName: "DeleteItem", Handler: unary(Items_DeleteItem_FullMethodName, ItemsServer.DeleteItem)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       _Items_Watch_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "ldr/items.json",
}

func RegisterItemsServer(s grpc.ServiceRegistrar, srv ItemsServer) {
	s.RegisterService(&Items_ServiceDesc, srv)
}

// ItemsClient is the client API for the ldr.Items service.
type ItemsClient interface {
	CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*Item, error)
	GetItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*Item, error)
	ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error)
	UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*Item, error)
	DeleteItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*Empty, error)
	Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error)
}

type itemsClient struct {
	cc grpc.ClientConnInterface
}

func NewItemsClient(cc grpc.ClientConnInterface) ItemsClient {
	return &itemsClient{cc}
}

func (c *itemsClient) CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, Items_CreateItem_FullMethodName, in, opts)
}
func (c *itemsClient) GetItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, Items_GetItem_FullMethodName, in, opts)
}
func (c *itemsClient) ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error) {
	return invoke[ListItemsResponse](ctx, c.cc, Items_ListItems_FullMethodName, in, opts)
}
func (c *itemsClient) UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, Items_UpdateItem_FullMethodName, in, opts)
}
func (c *itemsClient) DeleteItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Items_DeleteItem_FullMethodName, in, opts)
}

func (c *itemsClient) Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error) {
	stream, err := c.cc.NewStream(ctx, &Items_ServiceDesc.Streams[0], Items_Watch_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchRequest, Event]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
