package cflag

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindKitchenSink(t *testing.T) {
	type Logging struct {
		Verbose bool `cflag:"usage=chatty output"`
	}
	type Server struct {
		Logging
		NT            int    `cflag:"default=4,usage=Maximum number of threads"`
		ModelPath     string `cflag:"env,usage='engine directory, absolute or relative'"`
		Pi            float64
		Port          uint16 `cflag:"name=listen-port,placeholder=port"`
		Timeout       time.Duration
		Remote        netip.AddrPort
		Count         int64
		Size          uint
		Hidden        string `cflag:"-"`
		unexportedInt int
	}
	server := &Server{ModelPath: "./", Pi: 3}

	flags, err := Bind(server)
	require.NoError(t, err)

	names := []string{}
	for _, f := range flags {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"verbose", "nt", "model-path", "pi", "listen-port",
		"timeout", "remote", "count", "size",
	}, names)
	assert.Equal(t, "MODEL_PATH", flags[2].EnvVar)
	assert.Equal(t, "engine directory, absolute or relative", flags[2].Usage)
	assert.Equal(t, "port", flags[4].Placeholder)

	env := NewMapEnv(map[string]string{"MODEL_PATH": "/srv"})
	fs := newTestFlagSet(t, "test", WithEnv(env))
	err = fs.Parse(flags, []string{
		"--verbose",
		"--listen-port", "8080",
		"--timeout=5s",
		"--remote", "10.0.0.1:514",
		"--count", "-3",
		"--size", "12",
	})
	require.NoError(t, err)

	expected := &Server{
		Logging:   Logging{Verbose: true},
		NT:        4,
		ModelPath: "/srv",
		Pi:        3,
		Port:      8080,
		Timeout:   5 * time.Second,
		Remote:    netip.MustParseAddrPort("10.0.0.1:514"),
		Count:     -3,
		Size:      12,
	}
	assert.Equal(t, expected, server)
}

func TestBindIgnoreMinusTag(t *testing.T) {
	cfg := struct {
		Hidden string `cflag:"-"`
	}{}
	flags, err := Bind(&cfg)
	require.Nil(t, err)
	assert.Len(t, flags, 0)
}

func TestBindEmbedTag(t *testing.T) {
	type Inner struct {
		Depth int
	}
	cfg := struct {
		Inner Inner `cflag:"embed"`
	}{}
	flags, err := Bind(&cfg)
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "depth", flags[0].Name)
	assert.Equal(t, &cfg.Inner.Depth, flags[0].Value)
}

func TestBindErrors(t *testing.T) {
	_, err := Bind(nil)
	assert.Error(t, err)

	_, err = Bind(struct{}{})
	assert.Error(t, err)

	n := 3
	_, err = Bind(&n)
	assert.Error(t, err)

	_, err = Bind(&struct {
		C chan int
	}{})
	assert.ErrorContains(t, err, "no converter for type chan int")

	_, err = Bind(&struct {
		S string `cflag:"bogus,other=1"`
	}{})
	assert.ErrorContains(t, err, "unknown tags: bogus, other")

	_, err = Bind(&struct {
		S string `cflag:"name=-s"`
	}{})
	assert.ErrorContains(t, err, "invalid flag name")

	assert.Panics(t, func() {
		MustBind(nil)
	})
}

func TestParseTagPairs(t *testing.T) {
	cases := []struct {
		in  string
		out map[string]string
	}{
		{
			"",
			map[string]string{},
		},
		{
			"foo",
			map[string]string{
				"foo": "",
			},
		},
		{
			"foo=bar",
			map[string]string{
				"foo": "bar",
			},
		},
		{
			"foo=bar,baz",
			map[string]string{
				"foo": "bar",
				"baz": "",
			},
		},
		{
			"foo=bar, baz=quux",
			map[string]string{
				"foo": "bar",
				"baz": "quux",
			},
		},
		{
			"foo=bar,baz='quux1,quux2'",
			map[string]string{
				"foo": "bar",
				"baz": "quux1,quux2",
			},
		},
		{
			"foo,bar='one, two',baz=42",
			map[string]string{
				"foo": "",
				"bar": "one, two",
				"baz": "42",
			},
		},
		{
			"usage=a=b",
			map[string]string{
				"usage": "a=b",
			},
		},
	}

	for _, c := range cases {
		out, err := parseTagPairs(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.out, out, c.in)
	}

	for _, in := range []string{"=x", "usage='open"} {
		_, err := parseTagPairs(in)
		assert.Error(t, err, in)
	}
}
