package main

import (
	"context"
	"fmt"
	"os"
	"time"

	cli "github.com/spf13/pflag"

	"edi/internal/ipc"
)

func main() {
	socket := cli.StringP("socket", "s", ipc.DefaultSocketPath, "Control socket path")
	cli.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: edi-ctl [flags] [trigger|status]\n")
		cli.PrintDefaults()
	}
	cli.Parse()

	cmd := ipc.CmdTrigger
	if cli.NArg() > 0 {
		cmd = cli.Arg(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := ipc.SendCommand(ctx, *socket, cmd)
	if err != nil {
		fmt.Println("edi-daemon not running:", err)
		os.Exit(1)
	}
	if !r.OK {
		fmt.Printf("%s: %s (state %s)\n", cmd, r.Error, r.State)
		os.Exit(1)
	}
	fmt.Printf("state: %s, turns: %d\n", r.State, r.Turns)
}
