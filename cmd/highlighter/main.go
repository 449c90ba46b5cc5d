package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/johnhooks/highlighter/cmd/highlighter/commands"
	"github.com/johnhooks/highlighter/internal/foundation/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli := &commands.CLI{}
	global := commands.NewGlobal()

	parser, err := commands.New(ctx, cli, global)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	var parseErr *kong.ParseError
	if stderrors.As(err, &parseErr) && !errors.IsClassified(err) {
		parser.FatalIfErrorf(err)
	}

	adapter := errors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
	if err != nil {
		cancel()
		adapter.HandleError(err)
		return
	}

	err = kctx.Run()
	cancel()
	adapter.HandleError(err)
}
