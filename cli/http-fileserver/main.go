package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/asfaload/mirror-fileserver/extensions/mirror"
	E "github.com/sagernet/sing/common/exceptions"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	command := &cobra.Command{
		Use:   "http-fileserver <port>",
		Short: "serve the working directory, reading ':' in paths as '_' on disk",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			port, err := parsePort(args[0])
			if err != nil {
				logrus.Fatal(err)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err = run(ctx, port, os.Stdout)
			if err != nil {
				logrus.Fatal(err)
			}
		},
	}
	err := command.Execute()
	if err != nil {
		logrus.Fatal(err)
	}
}

func parsePort(arg string) (uint16, error) {
	port, err := strconv.ParseUint(arg, 10, 16)
	if err != nil {
		return 0, E.Cause(err, "bad port ", arg)
	}
	return uint16(port), nil
}

func run(ctx context.Context, port uint16, stdout io.Writer, options ...mirror.Option) error {
	server, err := mirror.NewServer(port, options...)
	if err != nil {
		return err
	}
	err = server.Start()
	if err != nil {
		return err
	}
	<-ctx.Done()
	err = server.Close()
	if err != nil {
		return E.Cause(err, "close server")
	}
	fmt.Fprintln(stdout, "Done.")
	return nil
}
