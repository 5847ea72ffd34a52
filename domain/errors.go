package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the viewer may not perform the action
	// (edit or delete of someone else's comment, admin endpoints).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyComment indicates the user submitted an empty comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrEmptyPost indicates a post was submitted without a title or body.
	ErrEmptyPost = errors.New("post needs a title and a body")

	// ErrInvalidParent indicates a reply targets a comment that is
	// unknown locally or was rejected by the server.
	ErrInvalidParent = errors.New("reply parent does not exist")

	// ErrSelfLike indicates an author tried to like their own comment.
	ErrSelfLike = errors.New("cannot like your own comment")

	// ErrToggleInFlight indicates a like/save toggle was invoked while a
	// previous toggle for the same post is still awaiting the server.
	ErrToggleInFlight = errors.New("toggle already in flight")
)
