package message

import (
	"github.com/frahmantamala/edumaster/internal/core/common/validation"
)

type CreateRequest struct {
	RecipientID int64  `json:"recipient_id" validate:"required"`
	Subject     string `json:"subject"`
	Body        string `json:"body" validate:"required,notblank"`
}

func (r CreateRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

type ListFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

type MessagesResponse struct {
	Messages []*Message `json:"messages"`
	Count    int        `json:"count"`
}
