// Package messenger is the internal RPC contract of the messenger for other platform services.
// Messages travel as JSON over gRPC, so callers need no generated protobuf code.
package messenger

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const ServiceName = "MessengerService"

const (
	MessengerService_GetUnreadCount_FullMethodName   = "/" + ServiceName + "/GetUnreadCount"
	MessengerService_GetConversations_FullMethodName = "/" + ServiceName + "/GetConversations"
	MessengerService_GetPresence_FullMethodName      = "/" + ServiceName + "/GetPresence"
)

type GetUnreadCountIn struct{}

type GetUnreadCountOut struct {
	UnreadCount int64 `json:"unread_count"`
}

type GetConversationsIn struct{}

type Conversation struct {
	ConversationID     string    `json:"conversation_id"`
	OtherUserUUID      string    `json:"other_user_uuid"`
	OtherUserName      string    `json:"other_user_name"`
	LastMessageContent string    `json:"last_message_content"`
	LastMessageAt      time.Time `json:"last_message_at"`
	UnreadCount        int64     `json:"unread_count"`
}

type GetConversationsOut struct {
	Conversations []Conversation `json:"conversations"`
}

type GetPresenceIn struct {
	UserUUIDs []string `json:"user_uuids"`
}

type GetPresenceOut struct {
	Online map[string]bool `json:"online"`
}

// MessengerServiceServer is the server API for MessengerService.
type MessengerServiceServer interface {
	GetUnreadCount(context.Context, *GetUnreadCountIn) (*GetUnreadCountOut, error)
	GetConversations(context.Context, *GetConversationsIn) (*GetConversationsOut, error)
	GetPresence(context.Context, *GetPresenceIn) (*GetPresenceOut, error)
}

func RegisterMessengerServiceServer(s grpc.ServiceRegistrar, srv MessengerServiceServer) {
	s.RegisterService(&MessengerService_ServiceDesc, srv)
}

func _MessengerService_GetUnreadCount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetUnreadCountIn)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MessengerServiceServer).GetUnreadCount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: MessengerService_GetUnreadCount_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MessengerServiceServer).GetUnreadCount(ctx, req.(*GetUnreadCountIn))
	}
	return interceptor(ctx, in, info, handler)
}

func _MessengerService_GetConversations_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetConversationsIn)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MessengerServiceServer).GetConversations(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: MessengerService_GetConversations_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MessengerServiceServer).GetConversations(ctx, req.(*GetConversationsIn))
	}
	return interceptor(ctx, in, info, handler)
}

func _MessengerService_GetPresence_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPresenceIn)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MessengerServiceServer).GetPresence(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: MessengerService_GetPresence_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MessengerServiceServer).GetPresence(ctx, req.(*GetPresenceIn))
	}
	return interceptor(ctx, in, info, handler)
}

var MessengerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MessengerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetUnreadCount",
			Handler:    _MessengerService_GetUnreadCount_Handler,
		},
		{
			MethodName: "GetConversations",
			Handler:    _MessengerService_GetConversations_Handler,
		},
		{
			MethodName: "GetPresence",
			Handler:    _MessengerService_GetPresence_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "messenger",
}

// MessengerServiceClient is the client API for MessengerService.
type MessengerServiceClient interface {
	GetUnreadCount(ctx context.Context, in *GetUnreadCountIn, opts ...grpc.CallOption) (*GetUnreadCountOut, error)
	GetConversations(ctx context.Context, in *GetConversationsIn, opts ...grpc.CallOption) (*GetConversationsOut, error)
	GetPresence(ctx context.Context, in *GetPresenceIn, opts ...grpc.CallOption) (*GetPresenceOut, error)
}

type messengerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMessengerServiceClient(cc grpc.ClientConnInterface) MessengerServiceClient {
	return &messengerServiceClient{cc}
}

func (c *messengerServiceClient) GetUnreadCount(ctx context.Context, in *GetUnreadCountIn, opts ...grpc.CallOption) (*GetUnreadCountOut, error) {
	out := new(GetUnreadCountOut)
	err := c.cc.Invoke(ctx, MessengerService_GetUnreadCount_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *messengerServiceClient) GetConversations(ctx context.Context, in *GetConversationsIn, opts ...grpc.CallOption) (*GetConversationsOut, error) {
	out := new(GetConversationsOut)
	err := c.cc.Invoke(ctx, MessengerService_GetConversations_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *messengerServiceClient) GetPresence(ctx context.Context, in *GetPresenceIn, opts ...grpc.CallOption) (*GetPresenceOut, error) {
	out := new(GetPresenceOut)
	err := c.cc.Invoke(ctx, MessengerService_GetPresence_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
