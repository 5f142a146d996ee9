// Package main starts the vkts command-line tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"

	vktscmd "github.com/smurphik/vkts/internal/cmd/vkts"
	"github.com/smurphik/vkts/internal/platform/config"
)

func main() {
	log.SetPrefix("[VKTS] ")

	var args vktscmd.Args
	arg.MustParse(&args)

	cfg, err := vktscmd.LoadConfig(args)
	if err != nil {
		config.Exitf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := vktscmd.Run(ctx, cfg, args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, vktscmd.Message(err))
		os.Exit(1)
	}
}
