package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPipelineStopped  = errors.New("media pipeline is stopped")
	ErrNoMediaGroup     = errors.New("message does not belong to a media group")
	ErrPermissionDenied = errors.New("no permission to post into the target chat")
	ErrFileIncomplete   = errors.New("file is not fully downloaded")
	ErrUnsupportedMedia = errors.New("unsupported media kind")
	ErrForwarderRunning = errors.New("forwarder is already running")
	ErrNoMediaFile      = errors.New("message does not contain a media file")
)

// ChannelError reports a failure to resolve a channel identifier or a
// permission problem with a resolved channel.
type ChannelError struct {
	Identifier string
	Err        error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("channel %q: %v", e.Identifier, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

func NewChannelError(identifier string, err error) *ChannelError {
	return &ChannelError{Identifier: identifier, Err: err}
}

// MediaError reports a transfer failure of a single media task.
type MediaError struct {
	TaskID string
	Err    error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media task %s: %v", e.TaskID, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

func NewMediaError(taskID string, err error) *MediaError {
	return &MediaError{TaskID: taskID, Err: err}
}
