package websocket

import "errors"

var (
	ErrEmptyMessage = errors.New("message must contain text, images or a shared post")
	ErrNotConnected = errors.New("you can only message your connections")
	ErrPostNotFound = errors.New("shared post not found")
	ErrSaveFailed   = errors.New("failed to save message")
)
