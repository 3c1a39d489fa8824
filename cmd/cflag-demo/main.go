// Command cflag-demo parses a server-style configuration and prints it.
package main

import (
	"log/slog"
	"net/netip"
	"os"

	"github.com/kr/pretty"

	"github.com/isobit/cflag"
	cflagslog "github.com/isobit/cflag/slog"
)

type config struct {
	NT        int
	Debug     bool
	ModelPath string
	Pi        float64
	IP        netip.Addr
	Port      uint16
	Addr      netip.AddrPort
	Log       cflagslog.Options
}

func main() {
	fs := cflag.New(os.Args[0], cflag.ExitOnError)
	defer fs.Free()

	cfg := config{}
	flags := []cflag.Flag{
		{Name: "nt", Default: "0", Usage: "Maximum number of threads", Convert: cflag.Int, Value: &cfg.NT},
		{Name: "debug", Default: "false", Usage: "Open the server debug mode", Convert: cflag.Bool, Value: &cfg.Debug},
		{Name: "model_path", Default: "./", Usage: "xxx engine directory", Convert: cflag.String, Value: &cfg.ModelPath},
		{Name: "pi", Default: "0", Usage: "pi", Convert: cflag.Double, Value: &cfg.Pi},
		{Name: "ip", Default: "0.0.0.0", Usage: "Remote server ip", Convert: cflag.IP, Value: &cfg.IP},
		{Name: "port", Default: "0", Usage: "Remote server port", Convert: cflag.Port, Value: &cfg.Port},
		{Name: "addr", Default: "", Usage: "Log server addr", Convert: cflag.Addr, Value: &cfg.Addr, Placeholder: "ip:port"},
	}
	flags = append(flags, cfg.Log.Flags()...)

	fs.Parse(flags, os.Args[1:])
	cfg.Log.Configure()

	slog.Debug("configuration parsed", "args", fs.Args())
	pretty.Println(cfg)
}
