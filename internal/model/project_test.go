package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagsRoundTrip(t *testing.T) {
	assert.Equal(t, "go,postgres", JoinTags([]string{" go", "postgres ", ""}))
	assert.Equal(t, []string{"go", "postgres"}, SplitTags("go, postgres,"))
	assert.Equal(t, []string{}, SplitTags(""))
	assert.Equal(t, "", JoinTags(nil))
}

func TestRequestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusAccepted.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, RequestStatus("cancelled").Valid())
	assert.False(t, RequestStatus("").Valid())
}
