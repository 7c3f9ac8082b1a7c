package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliverCode(t *testing.T) {
	ch := make(chan string, 1)

	deliverCode(ch, "first")
	// A duplicate or late redirect must not block once nobody is receiving.
	deliverCode(ch, "second")

	assert.Equal(t, "first", <-ch)
	assert.Len(t, ch, 0)
}
