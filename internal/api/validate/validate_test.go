package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	assert.Nil(t, Collect(Required("name", "apollo"), MaxLen("name", "apollo", 10)))

	errs := Collect(Required("username", " "), Required("password", ""), MaxLen("name", "abc", 2))
	assert.Len(t, errs, 3)
	assert.Equal(t, "username: required; password: required; name: too long", errs.Error())
}
