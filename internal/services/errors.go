package services

import (
	"errors"
	"fmt"
)

// Error taxonomy roots. Every error returned by this package wraps exactly
// one of these, so handlers can map to an HTTP status with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
	ErrInvalidState    = errors.New("invalid state")
)

var (
	ErrBoardNotFound      = fmt.Errorf("board %w", ErrNotFound)
	ErrColumnNotFound     = fmt.Errorf("column %w", ErrNotFound)
	ErrCardNotFound       = fmt.Errorf("card %w", ErrNotFound)
	ErrCommentNotFound    = fmt.Errorf("comment %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrInvitationNotFound = fmt.Errorf("invitation %w", ErrNotFound)

	ErrNotBoardOwner    = fmt.Errorf("%w: you do not have ownership of this board", ErrUnauthorized)
	ErrNotBoardMember   = fmt.Errorf("%w: you are not a collaborator on this board", ErrUnauthorized)
	ErrNotInvitee       = fmt.Errorf("%w: this invitation was not sent to you", ErrUnauthorized)
	ErrNotCommentAuthor = fmt.Errorf("%w: you can only delete your own comments", ErrUnauthorized)

	ErrInvalidTargetOrder = fmt.Errorf("%w: target order must be a non-negative integer", ErrInvalidArgument)
	ErrColumnOnOtherBoard = fmt.Errorf("%w: target column belongs to a different board", ErrInvalidArgument)
	ErrInvalidCategory    = fmt.Errorf("%w: unknown board category", ErrInvalidArgument)
	ErrSelfInvitation     = fmt.Errorf("%w: you cannot invite yourself", ErrInvalidArgument)
	ErrNotACollaborator   = fmt.Errorf("%w: assignee is not a collaborator on this board", ErrInvalidArgument)

	ErrAlreadyCollaborator = fmt.Errorf("%w: user is already a collaborator on this board", ErrConflict)
	ErrAlreadyAssigned     = fmt.Errorf("%w: assignee has already been added to this card", ErrConflict)
	ErrInvitationPending   = fmt.Errorf("%w: an invitation is already pending for this user", ErrConflict)

	ErrInvitationResolved = fmt.Errorf("%w: invitation has already been responded to", ErrInvalidState)
)
