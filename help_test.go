package cflag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageFormat(t *testing.T) {
	var n int
	var debug bool
	fs := newTestFlagSet(t, "demo")
	require.NoError(t, fs.Parse([]Flag{
		{Name: "nt", Default: "0", Usage: "Maximum number of threads", Convert: Int, Value: &n, Placeholder: "n"},
		{Name: "debug", Default: "false", Usage: "Open the server debug mode", Convert: Bool, Value: &debug},
	}, nil))

	lines := strings.Split(strings.TrimSuffix(fs.UsageString(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Usage of demo:", lines[0])
	assert.ElementsMatch(t, []string{
		"  -nt <n>  Maximum number of threads  (default: 0)",
		"  -debug   Open the server debug mode",
	}, lines[1:])
}

func TestUsageFollowsRegistryOrder(t *testing.T) {
	cfg := &testConfig{}
	fs := newTestFlagSet(t, "demo")
	require.NoError(t, fs.Parse(cfg.flags(), nil))

	order := []string{}
	fs.Visit(func(f *Flag) {
		order = append(order, "-"+f.Name)
	})

	usage := fs.UsageString()
	last := -1
	for _, name := range order {
		i := strings.Index(usage, name+" ")
		require.True(t, i > last, "%s out of order in %q", name, usage)
		last = i
	}
}

func TestUsageSuppressedWithoutName(t *testing.T) {
	b := &strings.Builder{}
	cfg := &testConfig{}
	fs := newTestFlagSet(t, "", WithOutput(b))
	err := fs.Parse(cfg.flags(), []string{"--help"})
	assert.Equal(t, HelpRequested, KindOf(err))
	assert.Empty(t, b.String())
	assert.Empty(t, fs.UsageString())
}
