package main

import (
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/viant/sqlmap/cmd"
)

var version = "dev"

func main() {
	if err := cmd.New(version, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
