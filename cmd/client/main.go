// Package main is the command line client of the reservation chain. It talks to the dispatcher
// named by DispatcherServerIP / DispatcherServerPort in its configuration file.
//
//	client ping
//	client status
//	client reserve -name Ann -seat 3
//	client watch [-interval 1s]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"seatrouter/api"
	"seatrouter/config"
	"seatrouter/helpers"
	"seatrouter/transport"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	defaultConfigPath = "confclient.txt"
	callTimeout       = 5 * time.Second
	pingTimeout       = time.Second
)

var errUsage = errors.New("usage: client ping | status | reserve -name NAME -seat N | watch [-interval D]")

func main() {
	env, err := config.LoadEnv(defaultConfigPath)
	if err != nil {
		level.Error(helpers.NewLogger(os.Stderr, "info")).Log("msg", "Failed to read environment", "err", err)
		os.Exit(1)
	}
	logger := helpers.NewLogger(os.Stderr, env.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, env, os.Args[1:], os.Stdout, logger); err != nil {
		level.Error(logger).Log("msg", "Command failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, env config.Env, args []string, out io.Writer, logger log.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cfg, err := config.LoadClient(env.ConfigPath)
	if err != nil {
		return err
	}
	conn, err := transport.Dial(cfg.Dispatcher)
	if err != nil {
		return err
	}
	defer conn.Close()
	client := api.NewReservationServiceClient(conn)
	level.Debug(logger).Log("msg", "Dispatcher", "addr", cfg.Dispatcher)

	return dispatch(ctx, client, args, out)
}

func dispatch(ctx context.Context, client api.ReservationServiceClient, args []string, out io.Writer) error {
	switch args[0] {
	case "ping":
		if !ping(ctx, client) {
			fmt.Fprintln(out, "Dispatcher is unavailable.")
			return errors.New("dispatcher is unavailable")
		}
		fmt.Fprintln(out, "Dispatcher is available.")
		return nil

	case "status":
		return status(ctx, client, out)

	case "reserve":
		fs := flag.NewFlagSet("reserve", flag.ContinueOnError)
		fs.SetOutput(out)
		name := fs.String("name", "", "customer name")
		var seat int32
		fs.Func("seat", "seat (room) number", func(s string) error {
			v, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return errors.New("not a 32-bit integer")
			}
			seat = int32(v)
			return nil
		})
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return reserve(ctx, client, out, *name, seat)

	case "watch":
		fs := flag.NewFlagSet("watch", flag.ContinueOnError)
		fs.SetOutput(out)
		interval := fs.Duration("interval", time.Second, "ping interval")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		watch(ctx, client, out, *interval)
		return nil

	default:
		return errUsage
	}
}

func ping(ctx context.Context, client api.ReservationServiceClient) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	_, err := client.Ping(ctx, &api.PingRequest{})
	return err == nil
}

func status(ctx context.Context, client api.ReservationServiceClient, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	stream, err := client.GetSeatStatus(ctx, &api.SeatListRequest{})
	if err != nil {
		return err
	}
	for {
		st, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if st.GetMessage() != "" {
			fmt.Fprintln(out, st.GetMessage())
			continue
		}
		fmt.Fprintf(out, "Room %d: %s\n", st.GetSeatNumber(), st.GetStatus())
	}
}

func reserve(ctx context.Context, client api.ReservationServiceClient, out io.Writer, name string, seat int32) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	resp, err := client.ReserveSeat(ctx, &api.ReservationRequest{CustomerName: name, SeatNumber: seat})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, resp.GetMessage())
	return nil
}

// watch pings every interval until ctx ends and prints each availability change, starting with
// the first observation.
func watch(ctx context.Context, client api.ReservationServiceClient, out io.Writer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var last *bool
	for {
		up := ping(ctx, client)
		if ctx.Err() != nil {
			return
		}
		if last == nil || *last != up {
			if up {
				fmt.Fprintf(out, "%s dispatcher is available\n", time.Now().Format(time.TimeOnly))
			} else {
				fmt.Fprintf(out, "%s dispatcher is unavailable\n", time.Now().Format(time.TimeOnly))
			}
			last = &up
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
