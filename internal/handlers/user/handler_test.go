package user

import (
	"net/http/httptest"
	"testing"

	gDto "nutrisur/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestFiltersOf(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/users?email=Ana@Example.com&level=admin&active=false&full_name=%20torres%20&phone=", nil)

	group := filtersOf(r)

	assert.Equal(t, gDto.FilterGroupOperatorAnd, group.Operator)
	assert.Equal(t, []any{
		gDto.Filter{Field: "email", Operator: gDto.FilterOperatorEq, Value: "ana@example.com", Table: "users"},
		gDto.Filter{Field: "level", Operator: gDto.FilterOperatorEq, Value: "admin", Table: "users"},
		gDto.Filter{Field: "full_name", Operator: gDto.FilterOperatorLike, Value: "torres", Table: "users"},
		gDto.Filter{Field: "active", Operator: gDto.FilterOperatorEq, Value: false, Table: "users"},
	}, group.Filters)
}

func TestFiltersOf_Empty(t *testing.T) {
	group := filtersOf(httptest.NewRequest("GET", "/v1/users?active=maybe", nil))

	assert.Empty(t, group.Filters)
}
