package rpc

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"social-scheduler-api/internal/apperr"
)

const errorDomain = "social-scheduler"

var kindCodes = map[apperr.Kind]codes.Code{
	apperr.KindNotFound:             codes.NotFound,
	apperr.KindForbidden:            codes.PermissionDenied,
	apperr.KindInvalidSchedule:      codes.InvalidArgument,
	apperr.KindInvalidParticipants:  codes.InvalidArgument,
	apperr.KindInvalidArgument:      codes.InvalidArgument,
	apperr.KindDuplicateParticipant: codes.AlreadyExists,
	apperr.KindDuplicateFollow:      codes.AlreadyExists,
	apperr.KindAlreadyExists:        codes.AlreadyExists,
	apperr.KindInvalidOperation:     codes.FailedPrecondition,
	apperr.KindSelfFollow:           codes.FailedPrecondition,
	apperr.KindUnauthenticated:      codes.Unauthenticated,
}

// Code returns the gRPC code for an error kind.
func Code(k apperr.Kind) codes.Code {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return codes.Internal
}

// Status converts err into a gRPC status error. Errors that already carry a
// status pass through. Application errors get an ErrorInfo detail whose
// reason is the error kind.
func Status(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	kind := apperr.KindOf(err)
	code := Code(kind)
	st := status.New(code, apperr.MessageOf(err))
	if code == codes.Internal {
		return st.Err()
	}
	withInfo, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: string(kind), Domain: errorDomain})
	if derr != nil {
		return st.Err()
	}
	return withInfo.Err()
}

// Reason extracts the ErrorInfo reason from a status error, or "".
func Reason(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.Reason
		}
	}
	return ""
}
