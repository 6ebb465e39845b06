package utils_test

import (
	"testing"

	"github.com/dwc-revival/nasd/std/utils"
	tu "github.com/dwc-revival/nasd/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestIf(t *testing.T) {
	tu.SetT(t)

	require.Equal(t, "a", utils.If(true, "a", "b"))
	require.Equal(t, 2, utils.If(false, 1, 2))
}

func TestFirstNonEmpty(t *testing.T) {
	tu.SetT(t)

	require.Equal(t, "x", utils.FirstNonEmpty("", "x", "y"))
	require.Equal(t, "", utils.FirstNonEmpty())
	require.Equal(t, "", utils.FirstNonEmpty("", ""))
}
