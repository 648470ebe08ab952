package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "EVENTFRONT_"

type Application struct {
	Server  Server  `koanf:"server"`
	Api     Api     `koanf:"api"`
	Locale  string  `koanf:"locale"`
	Images  Images  `koanf:"images"`
	Booking Booking `koanf:"booking"`
	Csrf    Csrf    `koanf:"csrf"`
	Metrics Metrics `koanf:"metrics"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

// Api points at the campus booking REST API. A zero Timeout means requests never time out.
type Api struct {
	BaseUrl string        `koanf:"baseurl"`
	Timeout time.Duration `koanf:"timeout"`
}

type Images struct {
	Dir string `koanf:"dir"`
}

type Booking struct {
	SuccessBanner time.Duration `koanf:"successbanner"`
}

type Csrf struct {
	Enabled bool   `koanf:"enabled"`
	AuthKey string `koanf:"authkey"`
	Secure  bool   `koanf:"secure"`
}

type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr: ":8181",
		},
		Api: Api{
			BaseUrl: "http://localhost:8080/api/v1",
		},
		Locale: "ru",
		Images: Images{
			Dir: "./static/img",
		},
		Booking: Booking{
			SuccessBanner: 3 * time.Second,
		},
		Csrf: Csrf{
			Enabled: true,
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	app.Api.BaseUrl = strings.TrimRight(app.Api.BaseUrl, "/")

	return app, nil
}
