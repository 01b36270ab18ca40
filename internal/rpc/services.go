package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	AuthService    = "scheduler.v1.AuthService"
	UserService    = "scheduler.v1.UserService"
	MeetingService = "scheduler.v1.MeetingService"
	FollowService  = "scheduler.v1.FollowService"
)

// Full method names referenced outside this package.
const (
	MethodRegister = "/" + AuthService + "/Register"
	MethodLogin    = "/" + AuthService + "/Login"
	MethodRefresh  = "/" + AuthService + "/Refresh"
)

type AuthServer interface {
	Register(context.Context, *RegisterRequest) (*TokenResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	Refresh(context.Context, *RefreshRequest) (*TokenResponse, error)
	Logout(context.Context, *Empty) (*Ack, error)
}

type UserServer interface {
	GetMe(context.Context, *Empty) (*User, error)
	GetUserByAccount(context.Context, *AccountRequest) (*User, error)
	SearchUsers(context.Context, *ListRequest) (*UserList, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*User, error)
	ScheduleDeletion(context.Context, *Empty) (*DeletionInfo, error)
	RecoverAccount(context.Context, *Empty) (*DeletionInfo, error)
	GetDeletionInfo(context.Context, *Empty) (*DeletionInfo, error)
}

type MeetingServer interface {
	CreateMeeting(context.Context, *CreateMeetingRequest) (*Meeting, error)
	ListMeetings(context.Context, *ListMeetingsRequest) (*MeetingList, error)
	ListMeetingRequests(context.Context, *ListRequest) (*MeetingList, error)
	GetMeeting(context.Context, *IDRequest) (*Meeting, error)
	AddParticipant(context.Context, *ParticipantRequest) (*Participant, error)
	UpdateParticipantStatus(context.Context, *ParticipantRequest) (*Participant, error)
	UpdateMeeting(context.Context, *UpdateMeetingRequest) (*Meeting, error)
	DeleteMeeting(context.Context, *IDRequest) (*Ack, error)
	DeleteParticipant(context.Context, *IDRequest) (*Ack, error)
	ListMeetingTypes(context.Context, *Empty) (*MeetingTypeList, error)
}

type FollowServer interface {
	Follow(context.Context, *IDRequest) (*Follow, error)
	Unfollow(context.Context, *IDRequest) (*Ack, error)
	GetFollowStatus(context.Context, *IDRequest) (*FollowStatus, error)
	GetFollowCounts(context.Context, *IDRequest) (*FollowCounts, error)
	ListFollowing(context.Context, *ListRequest) (*FollowList, error)
	ListFollowers(context.Context, *ListRequest) (*FollowList, error)
}

// unary builds the method descriptor for a server method expression such as
// AuthServer.Login.
func unary[S any, Req any, PReq interface {
	*Req
	Message
}, Resp any](service, method string, call func(S, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	full := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(PReq))
			})
		},
	}
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthService,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AuthService, "Register", AuthServer.Register),
		unary(AuthService, "Login", AuthServer.Login),
		unary(AuthService, "Refresh", AuthServer.Refresh),
		unary(AuthService, "Logout", AuthServer.Logout),
	},
	Metadata: "scheduler/v1/auth.proto",
}

var UserServiceDesc = grpc.ServiceDesc{
	ServiceName: UserService,
	HandlerType: (*UserServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(UserService, "GetMe", UserServer.GetMe),
		unary(UserService, "GetUserByAccount", UserServer.GetUserByAccount),
		unary(UserService, "SearchUsers", UserServer.SearchUsers),
		unary(UserService, "UpdateProfile", UserServer.UpdateProfile),
		unary(UserService, "ScheduleDeletion", UserServer.ScheduleDeletion),
		unary(UserService, "RecoverAccount", UserServer.RecoverAccount),
		unary(UserService, "GetDeletionInfo", UserServer.GetDeletionInfo),
	},
	Metadata: "scheduler/v1/user.proto",
}

var MeetingServiceDesc = grpc.ServiceDesc{
	ServiceName: MeetingService,
	HandlerType: (*MeetingServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MeetingService, "CreateMeeting", MeetingServer.CreateMeeting),
		unary(MeetingService, "ListMeetings", MeetingServer.ListMeetings),
		unary(MeetingService, "ListMeetingRequests", MeetingServer.ListMeetingRequests),
		unary(MeetingService, "GetMeeting", MeetingServer.GetMeeting),
		unary(MeetingService, "AddParticipant", MeetingServer.AddParticipant),
		unary(MeetingService, "UpdateParticipantStatus", MeetingServer.UpdateParticipantStatus),
		unary(MeetingService, "UpdateMeeting", MeetingServer.UpdateMeeting),
		unary(MeetingService, "DeleteMeeting", MeetingServer.DeleteMeeting),
		unary(MeetingService, "DeleteParticipant", MeetingServer.DeleteParticipant),
		unary(MeetingService, "ListMeetingTypes", MeetingServer.ListMeetingTypes),
	},
	Metadata: "scheduler/v1/meeting.proto",
}

var FollowServiceDesc = grpc.ServiceDesc{
	ServiceName: FollowService,
	HandlerType: (*FollowServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(FollowService, "Follow", FollowServer.Follow),
		unary(FollowService, "Unfollow", FollowServer.Unfollow),
		unary(FollowService, "GetFollowStatus", FollowServer.GetFollowStatus),
		unary(FollowService, "GetFollowCounts", FollowServer.GetFollowCounts),
		unary(FollowService, "ListFollowing", FollowServer.ListFollowing),
		unary(FollowService, "ListFollowers", FollowServer.ListFollowers),
	},
	Metadata: "scheduler/v1/follow.proto",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func RegisterUserServer(s grpc.ServiceRegistrar, srv UserServer) {
	s.RegisterService(&UserServiceDesc, srv)
}

func RegisterMeetingServer(s grpc.ServiceRegistrar, srv MeetingServer) {
	s.RegisterService(&MeetingServiceDesc, srv)
}

func RegisterFollowServer(s grpc.ServiceRegistrar, srv FollowServer) {
	s.RegisterService(&FollowServiceDesc, srv)
}

// Invoke calls method on cc with the rpc codec.
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, method string, in, out Message, opts ...grpc.CallOption) error {
	return cc.Invoke(ctx, method, in, out, append(opts, grpc.ForceCodec(Codec{}))...)
}
