package example

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParsesSampleInput(t *testing.T) {
	table, err := Run()
	require.NoError(t, err)

	require.Equal(t, 1, table.Len())
	row := table.Rows()[0]
	assert.Equal(t, "router1", row.Values[table.ColumnIndex("HOSTNAME")])
	assert.Equal(t, "15.1(4)M", row.Values[table.ColumnIndex("VERSION")])
}
