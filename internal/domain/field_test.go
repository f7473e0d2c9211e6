package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_MarshalOmitsUnset(t *testing.T) {
	input := TaskInput{
		Name:    Set("Write report"),
		Project: Null[int64](),
	}

	data, err := json.Marshal(input)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Write report","project":null}`, string(data))
}

func TestField_UnmarshalDistinguishesNullFromAbsent(t *testing.T) {
	var input TaskInput
	err := json.Unmarshal([]byte(`{"project":null,"tags":[1,2]}`), &input)
	require.NoError(t, err)

	assert.False(t, input.Name.IsSet())
	assert.True(t, input.Project.IsNull())
	assert.Nil(t, input.Project.Ptr())

	tags, ok := input.Tags.Get()
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 2}, tags)
}

func TestListOptions_Query(t *testing.T) {
	assert.Equal(t, "", ListOptions{}.Query().Encode())
	assert.Equal(t, "limit=5&ordering=-start_time", ListOptions{Ordering: "-start_time", Limit: 5}.Query().Encode())
}

func TestReplaceAndRemoveByID(t *testing.T) {
	records := []Tag{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}

	replaced := ReplaceByID(records, 2, Tag{ID: 2, Name: "B"})
	assert.Equal(t, []Tag{{ID: 1, Name: "a"}, {ID: 2, Name: "B"}, {ID: 3, Name: "c"}}, replaced)
	assert.Equal(t, "b", records[1].Name, "input slice must not be modified")

	removed := RemoveByID(records, 1)
	assert.Equal(t, []Tag{{ID: 2, Name: "b"}, {ID: 3, Name: "c"}}, removed)
	assert.Equal(t, 1, IndexOf(removed, 3))
	assert.Equal(t, -1, IndexOf(removed, 1))
}
