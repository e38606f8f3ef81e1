package main

import (
	"flag"
	"os"

	"github.com/tradejournal/tradejournal-server/journalservice"
)

func main() {
	var opts journalservice.Options
	flag.StringVar(&opts.Environment, "env", "", "Override ENVIRONMENT (development, testing, production)")
	flag.StringVar(&opts.DBDriver, "db-driver", "", "Override DB_DRIVER (memory, firestore, sqlite, postgres)")
	flag.IntVar(&opts.HTTPPort, "port", 0, "Override HTTP_PORT")
	flag.Parse()

	if err := journalservice.Run(opts); err != nil {
		os.Exit(1)
	}
}
