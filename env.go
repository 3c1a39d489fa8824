package cflag

import (
	"os"
)

// Env is consulted at registration for flags that set EnvVar.
type Env interface {
	Lookup(key string) (value string, ok bool)
}

type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

type MapEnv struct {
	Data map[string]string
}

func NewMapEnv(data map[string]string) MapEnv {
	return MapEnv{Data: data}
}

func (me MapEnv) Lookup(key string) (string, bool) {
	value, ok := me.Data[key]
	return value, ok
}
