package club

import "errors"

// Guard failures for the membership workflows. Controllers map these to HTTP
// statuses; keeping them here keeps the rule ordering testable without a
// database or router.
var (
	ErrNoMembership   = errors.New("you are not a member of this club")
	ErrOwnersOnly     = errors.New("only the club owner can change member roles")
	ErrInvalidRole    = errors.New("role must be coach or runner")
	ErrMemberNotFound = errors.New("member not found")
	ErrCrossClub      = errors.New("member belongs to a different club")
	ErrTargetIsOwner  = errors.New("the owner's role cannot be changed")
	ErrSelfChange     = errors.New("you cannot change your own role")
)

// ValidateRoleChange evaluates the role-change guards in order and returns the
// first failure. The ordering is part of the contract: a non-owner caller is
// rejected with ErrOwnersOnly before the target is even considered, so target
// may be nil for callers that never get that far.
func ValidateRoleChange(caller, target *Membership, newRole string) error {
	if caller == nil {
		return ErrNoMembership
	}
	if caller.Role != RoleOwner {
		return ErrOwnersOnly
	}
	if newRole != RoleCoach && newRole != RoleRunner {
		return ErrInvalidRole
	}
	if target == nil {
		return ErrMemberNotFound
	}
	if target.ClubID != caller.ClubID {
		return ErrCrossClub
	}
	if target.Role == RoleOwner {
		return ErrTargetIsOwner
	}
	if target.UserID == caller.UserID {
		return ErrSelfChange
	}
	return nil
}

// CanCreateSessions reports whether the membership may schedule training
// sessions for its club.
func CanCreateSessions(m *Membership) bool {
	if m == nil {
		return false
	}
	return m.Role == RoleOwner || m.Role == RoleCoach
}

// CanRecordAttendanceFor reports whether the caller's membership may record an
// attendance status for the given member. Members may record their own;
// recording for someone else takes owner or coach.
func CanRecordAttendanceFor(caller *Membership, memberUserID uint) bool {
	if caller == nil {
		return false
	}
	if caller.UserID == memberUserID {
		return true
	}
	return caller.Role == RoleOwner || caller.Role == RoleCoach
}
