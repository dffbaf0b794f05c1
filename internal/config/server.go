package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Server holds settings for cmd/api, read from the environment.
type Server struct {
	Port      string
	Env       string
	PlantDir  string
	StaticDir string
}

func (s Server) Production() bool {
	return strings.EqualFold(s.Env, "production")
}

// LoadServer reads API_PORT, API_ENV, PLANT_DIR and STATIC_DIR.
func LoadServer() Server {
	v := viper.New()
	v.SetDefault("api_port", "8080")
	v.SetDefault("api_env", "development")
	v.SetDefault("plant_dir", "./examples/plants")
	v.SetDefault("static_dir", "./web/dist")
	v.AutomaticEnv()

	return Server{
		Port:      v.GetString("api_port"),
		Env:       v.GetString("api_env"),
		PlantDir:  v.GetString("plant_dir"),
		StaticDir: v.GetString("static_dir"),
	}
}
