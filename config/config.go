package config

import (
	"errors"
	"flag"
	"io/fs"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DBUrl       string
	CORSOrigins []string
	PublicDir   string
	Debug       bool
}

// ParseFlags loads an optional .env file, then parses the command line.
// PORT and MONGODB_URI from the environment override the built-in defaults.
func ParseFlags() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return Parse(os.Args[0], os.Args[1:], os.Getenv)
}

func Parse(name string, args []string, getenv func(string) string) (cfg Config, err error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	var host string
	flags.StringVar(&host, "host", "0.0.0.0", "listen host name")
	var port uint
	flags.UintVar(&port, "port", 8080, "listen port number (env PORT)")
	flags.StringVar(&cfg.DBUrl, "db-url", "forms.sqlite", "path to SQLite3 DB file, or mongodb:// URL (env MONGODB_URI)")
	var origins string
	flags.StringVar(&origins, "cors-origin", "*", "comma separated list of allowed CORS origins")
	flags.StringVar(&cfg.PublicDir, "public-dir", "", "directory of the built client, served at /")
	flags.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")

	// environment defaults, explicit flags still win
	if v := getenv("PORT"); v != "" {
		p, perr := strconv.ParseUint(v, 10, 16)
		if perr != nil {
			return cfg, errors.New("invalid PORT " + strconv.Quote(v))
		}
		port = uint(p)
	}
	if v := getenv("MONGODB_URI"); v != "" {
		cfg.DBUrl = v
	}
	if err = flags.Parse(args); err != nil {
		return
	}

	if port > 65535 {
		return cfg, errors.New("invalid -port " + strconv.FormatUint(uint64(port), 10))
	}
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.DBUrl == "" {
		err = errors.New("missing parameter -db-url")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
