package textfsm

import (
	"fmt"
	"testing"

	"github.com/ntctemplates/gotextfsm/fsmtest"
	"github.com/stretchr/testify/require"
)

func TestGoldenParseVersionRows(t *testing.T) {
	src := fsmtest.ReadFixture(t, "version.textfsm")
	input := fsmtest.ReadFixture(t, "version.input")

	tmpl, err := ParseString(src)
	require.NoError(t, err)

	rows, err := New(tmpl).ParseText(input, true)
	require.NoError(t, err)
	t.Log(fsmtest.Dump(rows))

	fsmtest.AssertGolden(t, "version.rows.golden", fmt.Sprintf("%v", rows))
}
