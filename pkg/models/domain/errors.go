package domain

import "fmt"

type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteError is a business error Tally reported inside an otherwise successful
// HTTP reply.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "tally: " + e.Message
}
