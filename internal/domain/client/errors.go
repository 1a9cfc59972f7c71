package client

import "errors"

var (
	ErrClientNotFound         = errors.New("client not found")
	ErrClientInactive         = errors.New("client is not active")
	ErrClientHasSubscriptions = errors.New("client has active subscriptions")
	ErrInvalidStatus          = errors.New("invalid client status")
	ErrInvalidClient          = errors.New("invalid client")
	ErrClientEmailExists      = errors.New("client email already exists")
)
