package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct{ ID uint }
type entity struct{ Label string }

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
}

func TestMapPtrsWithID(t *testing.T) {
	toEntity := func(r *row) (*entity, error) {
		if r.ID == 13 {
			return nil, errors.New("corrupt row")
		}
		return &entity{Label: strconv.Itoa(int(r.ID))}, nil
	}
	getID := func(r *row) uint { return r.ID }

	got, err := MapPtrsWithID([]*row{{ID: 1}, nil, {ID: 2}}, toEntity, getID)
	require.NoError(t, err)
	assert.Equal(t, []*entity{{Label: "1"}, {Label: "2"}}, got)

	_, err = MapPtrsWithID([]*row{{ID: 1}, {ID: 13}}, toEntity, getID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item ID 13")

	got, err = MapPtrsWithID[row, entity, uint](nil, toEntity, getID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
