// Package slog provides flags that configure the default log/slog logger.
package slog

import (
	"io"
	"log/slog"
	"os"

	"github.com/isobit/cflag"
)

type Options struct {
	LogLevel slog.Level `cflag:"env=LOG_LEVEL,placeholder=level,usage='minimum level: DEBUG, INFO, WARN or ERROR'"`
	LogJSON  bool       `cflag:"name=log-json,env=LOG_JSON,usage=log as JSON instead of text"`
}

// Flags returns descriptors bound to opts, for inclusion in a flag list.
func (opts *Options) Flags() []cflag.Flag {
	return cflag.MustBind(opts)
}

func (opts *Options) ConfigureWithHandlerOptions(w io.Writer, handlerOpts *slog.HandlerOptions) {
	slog.SetDefault(opts.NewLogger(w, handlerOpts))
}

func (opts *Options) Configure() {
	opts.ConfigureWithHandlerOptions(os.Stderr, nil)
}

// NewLogger builds a logger from opts without installing it.
func (opts *Options) NewLogger(w io.Writer, handlerOpts *slog.HandlerOptions) *slog.Logger {
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{}
	}
	handlerOpts.Level = opts.LogLevel

	var handler slog.Handler
	if opts.LogJSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}
