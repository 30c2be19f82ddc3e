package main

import (
	"flag"
	"log"
)

func main() {
	configPath := flag.String("config", "./sinkd.conf", "path to the configuration file")
	cidr := flag.String("cidr", "", "override the configured CIDR block")
	listen := flag.String("listen", "", "override the configured listen address")
	flag.Parse()

	// read in configuration
	if err := InitConfiguration(*configPath); err != nil {
		log.Fatalf("could not open configuration: %s\n", err)
	}
	config := GetConfiguration()
	if *cidr != "" {
		config.Cidr = *cidr
	}
	if *listen != "" {
		config.Listen = *listen
	}

	if err := InitLoggers(); err != nil {
		log.Fatalf("could not initialize loggers: %s\n", err)
	}

	// no pool, no service
	pool, err := NewAddressPool(config.Cidr)
	if err != nil {
		log.Fatalf("could not build address pool from [%s]: %s\n", config.Cidr, err)
	}
	activePool = pool

	InitApi()

	server := NewSinkholeServer(pool)
	activeServer = server

	address := config.GetListenAddress()
	Logger.Log(NewLogMessage(
		INFO,
		LogContext{
			"what": "starting sinkhole server",
			"addr": address,
			"cidr": config.Cidr,
		},
		nil,
	))
	if err := server.ListenAndServe(address); err != nil {
		log.Fatalf("failed to serve udp listener: %s\n", err)
	}
}
