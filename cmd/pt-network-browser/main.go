package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	lib "github.com/theoremus-urban-solutions/pt-network-browser"
	"github.com/theoremus-urban-solutions/pt-network-browser/config"
	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
)

func main() {
	mode := flag.String("mode", "serve", "serve|ingest")
	level := flag.String("level", "", "log level override (trace|debug|info|warn|error)")
	input := flag.String("input", "", "query-response JSON file for -mode ingest")
	flag.Parse()

	if err := config.LoadAppConfig(); err != nil {
		panic(err)
	}
	if *level != "" {
		config.Config.Log.Level = *level
	}
	log := lib.InitLogging(config.Config.Log.Level)
	app := lib.NewApp(config.Config, log)

	switch *mode {
	case "serve":
		lib.StartServer(app)
		lib.HandleGracefulShutdown(app)
	case "ingest":
		// One-shot: ingest a saved response and print the summary.
		if *input == "" {
			panic("-input is required for -mode ingest")
		}
		data, err := os.ReadFile(*input)
		if err != nil {
			panic(err)
		}
		var res osm.QueryResponse
		if err := json.Unmarshal(data, &res); err != nil {
			panic(err)
		}
		sum := app.Store.Ingest(res.Elements)
		out, _ := json.Marshal(sum)
		fmt.Println(string(out))
	default:
		panic("unknown mode")
	}
}
