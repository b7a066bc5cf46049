package types

import "github.com/google/uuid"

type (
	RequestID string
	FindingID string
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x RequestID) String() string { return string(x) }

func NewFindingID() FindingID {
	return FindingID(uuid.NewString())
}

func (x FindingID) String() string { return string(x) }
