package main

import (
	"context"
	"flag"
	"log"

	"github.com/vbncursed/movies/pkg/client/api"
	"github.com/vbncursed/movies/pkg/client/cli"
	"github.com/vbncursed/movies/pkg/client/session"
	"github.com/vbncursed/movies/pkg/client/state"
)

func main() {
	serverAddr := flag.String("server", "http://localhost:8080", "movies API base URL")
	flag.Parse()

	sess, err := session.NewFileStore("")
	if err != nil {
		log.Fatalf("init session store: %v", err)
	}

	client := api.New(*serverAddr, sess)
	st := state.NewStore(client, state.DefaultDebounce)

	app := cli.NewApp(client, st, sess)
	app.Run(context.Background())
}
