package apperr

var (
	ErrNotFound             = NotFound("not found")
	ErrForbidden            = Forbidden("forbidden")
	ErrInvalidSchedule      = InvalidSchedule("meeting start time must be in the future")
	ErrInvalidParticipants  = InvalidParticipants("invalid participants")
	ErrDuplicateParticipant = New(KindDuplicateParticipant, "user is already a participant in this meeting")
	ErrInvalidOperation     = InvalidOperation("operation not allowed")
	ErrSelfFollow           = New(KindSelfFollow, "cannot follow yourself")
	ErrDuplicateFollow      = New(KindDuplicateFollow, "already following this user")
	ErrInvalidArgument      = InvalidArg("invalid argument")
	ErrUnauthenticated      = Unauthenticated("unauthenticated")
	ErrAlreadyExists        = AlreadyExists("already exists")

	ErrMeetingNotFound     = NotFound("meeting not found")
	ErrParticipantNotFound = NotFound("participant not found")
	ErrUserNotFound        = NotFound("user not found")

	ErrOwnerSelfInvite    = InvalidParticipants("owner cannot self-invite")
	ErrNoParticipants     = InvalidParticipants("at least one participant required")
	ErrRepeatedInvitee    = InvalidParticipants("participant listed more than once")
	ErrCannotRemoveOwner  = InvalidOperation("cannot remove owner")
	ErrOwnerMustAccept    = InvalidOperation("owner participation cannot change")
	ErrRecoveryExpired    = InvalidOperation("account is not scheduled for deletion or the recovery period has expired")
	ErrInvalidCredentials = Unauthenticated("invalid credentials")
)
