package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-scheduler-api/internal/apperr"
)

func TestResolve(t *testing.T) {
	p, err := Page{}.Resolve(DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, Page{Skip: 0, Limit: 100}, p)

	p, err = Page{Skip: 5, Limit: 1000}.Resolve(DefaultFollowLimit)
	require.NoError(t, err)
	assert.Equal(t, Page{Skip: 5, Limit: 1000}, p)

	for _, bad := range []Page{{Skip: -1}, {Limit: -3}, {Limit: 1001}} {
		_, err := bad.Resolve(DefaultLimit)
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "%+v", bad)
	}
}
