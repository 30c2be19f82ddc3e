package main

import (
	"encoding/json"
	"fmt"
	"os"
)

type logConfig struct {
	// What log level to use
	Level LogLevel `json:"level"`

	// Where the log file should live
	Location string `json:"location"`
}

type Configuration struct {
	// The IPv4 CIDR block that answers are drawn from, e.g. "192.168.0.0/16"
	Cidr string `json:"cidr"`

	// Address to listen for DNS traffic on, host:port
	Listen string `json:"listen"`

	// Port to expose the admin API on
	HttpPort int `json:"http_port"`

	// Maximum concurrent queries
	ConcurrentQueries int `json:"concurrent_queries"`

	// Server logging
	ServerLog logConfig `json:"server_log"`

	// Query logging
	QueryLog logConfig `json:"query_log"`
}

// this is a pointer so that tests can set variables easily
// it is initialized here for the same reason
var configuration = &Configuration{}

func InitConfiguration(configpath string) error {
	file, err := os.Open(configpath)
	if err != nil {
		return fmt.Errorf("could not open configuration [%s]: %s", configpath, err)
	}
	defer file.Close()
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	configuration = &Configuration{}
	if err := decoder.Decode(configuration); err != nil {
		return fmt.Errorf("error while loading configuration from JSON: %s", err)
	}

	configJSON, err := json.MarshalIndent(configuration, "", "    ")
	if err != nil {
		return fmt.Errorf("could not render configuration [%v] as JSON", configuration)
	}
	fmt.Printf("running configuration: %s\n", string(configJSON))
	return nil
}

func GetConfiguration() *Configuration {
	return configuration
}

// the listen address, defaulting to the standard DNS port on all interfaces
func (c *Configuration) GetListenAddress() string {
	if c.Listen == "" {
		return ":53"
	}
	return c.Listen
}
