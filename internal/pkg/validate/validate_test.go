package validate

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"alumni-network/internal/domain"
)

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct("test", domain.SendMessageInput{ReceiverID: uuid.New(), Body: "hi"}))

	err := Struct("message.send", domain.SendMessageInput{Body: "hi"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "message.send", domain.OpOf(err))
	assert.Contains(t, err.Error(), "receiver_id is required")

	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'x'
	}
	err = Struct("social.add_comment", domain.CreateCommentInput{Body: string(long)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "body must be at most 2000 characters")
}
